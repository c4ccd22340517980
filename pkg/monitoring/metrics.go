package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Domain-specific metric collectors.
//
// These complement the generic controller-runtime metrics (reconcile counts,
// durations, work queue depth, etc.) with subscription health state that the
// framework cannot know about.
var (
	subscriptionInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cloudstreams_subscription_info",
			Help: "Info-style metric for Subscription discovery and phase tracking. Always 1.",
		},
		[]string{"name", "namespace", "phase"},
	)

	subscriptionPartitionLength = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cloudstreams_subscription_partition_length",
			Help: "Length of the partition a Subscription reads from, as last reported by the event store.",
		},
		[]string{"name", "namespace", "partition"},
	)

	subscriptionLag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cloudstreams_subscription_lag",
			Help: "Partition length minus acknowledged offset for a Subscription. May be negative.",
		},
		[]string{"name", "namespace", "partition"},
	)

	telemetryLookupTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloudstreams_health_telemetry_lookup_total",
			Help: "Total number of partition metadata lookups made while computing subscription health.",
		},
		[]string{"result"},
	)

	telemetryLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cloudstreams_health_telemetry_lookup_duration_seconds",
			Help:    "Latency of partition metadata lookups in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	healthRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cloudstreams_health_api_request_total",
			Help: "Total number of subscription health API requests.",
		},
		[]string{"code"},
	)

	healthRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cloudstreams_health_api_request_duration_seconds",
			Help:    "Time to stream a complete subscription health response in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	eventStoreConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cloudstreams_event_store_connected",
			Help: "1 while the NATS connection backing the event store is established, 0 otherwise.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all registered metric collectors. This is useful for
// testing that metrics are properly registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		subscriptionInfo,
		subscriptionPartitionLength,
		subscriptionLag,
		telemetryLookupTotal,
		telemetryLookupDuration,
		healthRequestTotal,
		healthRequestDuration,
		eventStoreConnected,
	}
}
