// Package health computes point-in-time health snapshots of Subscriptions.
//
// A snapshot merges what the control plane knows about a subscription (its
// phase, acknowledged offset and subscriber state) with what the event store
// reports for the subscription's partition (its current length), and derives
// the consumer lag from the two.
//
// The two sources fail independently. When the control plane cannot list
// subscriptions the query fails as a whole. When the event store cannot
// answer for a partition, the affected snapshot simply has no length and no
// lag; the failure is counted and otherwise absorbed.
//
// Snapshots are produced lazily as an iter.Seq so callers can stream them
// while the remaining partitions are still being looked up:
//
//	seq, err := handler.Handle(ctx, health.Query{Namespace: "default"})
//	if err != nil {
//	    return err
//	}
//	for h := range seq {
//	    enc.Encode(h)
//	}
//
// Cancelling ctx ends the sequence early without an error.
package health
