// Package eventstore reads partition telemetry from the cloud event store.
//
// The control plane never writes to the store. It only asks how long a
// partition currently is, so that subscription health can report how far a
// subscriber lags behind.
//
// Two providers are available:
//   - JetStreamStore: backed by a NATS JetStream stream where every partition
//     is a subject of the form <prefix>.<partition type>.<encoded id>.
//   - Static: a fixed in-memory table, used in tests and local development.
//
// Both implement the same GetPartitionMetadata method and fail with an error
// wrapping ErrPartitionNotFound or ErrUnavailable when no answer is possible.
package eventstore
