// Package monitoring provides Prometheus metrics, OpenTelemetry spans and
// recording helpers for the Cloud Streams control plane. It exposes
// subscription health gauges and event store lookup counters that complement
// the generic controller-runtime metrics already registered by the framework.
//
// All metrics follow the naming convention cloudstreams_<component>_<metric>_<unit>
// and are registered against controller-runtime's default Prometheus registry
// on import.
//
// Usage in the health aggregator:
//
//	monitoring.RecordTelemetryLookup(err, elapsed)
//
// Usage in the exporter:
//
//	monitoring.SetSubscriptionHealth(&health)
//	monitoring.DeleteSubscriptionHealth(name, namespace)
package monitoring
