package monitoring

import (
	"strconv"
	"time"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// SetSubscriptionHealth publishes a health snapshot as gauges.
// Old phase and partition labels are cleaned up via DeletePartialMatch, and
// the length and lag series are removed when the snapshot has no telemetry.
func SetSubscriptionHealth(h *cloudstreamsv1.SubscriptionHealth) {
	owner := map[string]string{"name": h.Name, "namespace": h.Namespace}

	subscriptionInfo.DeletePartialMatch(owner)
	subscriptionInfo.WithLabelValues(h.Name, h.Namespace, string(h.Phase)).Set(1)

	subscriptionPartitionLength.DeletePartialMatch(owner)
	subscriptionLag.DeletePartialMatch(owner)

	partition := ""
	if h.PartitionId != nil {
		partition = *h.PartitionId
	}
	if h.PartitionLength != nil {
		subscriptionPartitionLength.WithLabelValues(h.Name, h.Namespace, partition).Set(float64(*h.PartitionLength))
	}
	if h.Lag != nil {
		subscriptionLag.WithLabelValues(h.Name, h.Namespace, partition).Set(float64(*h.Lag))
	}
}

// DeleteSubscriptionHealth removes every series for a subscription that no
// longer exists.
func DeleteSubscriptionHealth(name, namespace string) {
	owner := map[string]string{"name": name, "namespace": namespace}
	subscriptionInfo.DeletePartialMatch(owner)
	subscriptionPartitionLength.DeletePartialMatch(owner)
	subscriptionLag.DeletePartialMatch(owner)
}

// RecordTelemetryLookup records a partition metadata lookup's result and duration.
func RecordTelemetryLookup(err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	telemetryLookupTotal.WithLabelValues(result).Inc()
	telemetryLookupDuration.Observe(duration.Seconds())
}

// RecordHealthRequest records a health API request's status code and duration.
func RecordHealthRequest(code int, duration time.Duration) {
	healthRequestTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	healthRequestDuration.Observe(duration.Seconds())
}

// SetEventStoreConnected tracks whether the event store connection is up.
func SetEventStoreConnected(connected bool) {
	if connected {
		eventStoreConnected.Set(1)
		return
	}
	eventStoreConnected.Set(0)
}
