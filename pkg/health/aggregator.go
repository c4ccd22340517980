package health

import (
	"context"
	"iter"
	"sync"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/monitoring"
	"github.com/cloud-streams/cloud-streams-operator/pkg/util/status"
)

// Aggregator builds SubscriptionHealth snapshots from subscriptions and the
// partition telemetry reported by a PartitionMetadataProvider.
//
// An Aggregator holds no state between calls and is safe for concurrent use.
type Aggregator struct {
	provider    PartitionMetadataProvider
	concurrency int
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithConcurrency lets up to n partition lookups run ahead of the consumer.
// Output order is unchanged. Values below 2 keep lookups strictly sequential.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		a.concurrency = n
	}
}

// NewAggregator creates an Aggregator reading telemetry from provider.
func NewAggregator(provider PartitionMetadataProvider, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{provider: provider, concurrency: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate returns a lazy sequence with one snapshot per subscription, in
// input order.
//
// Nothing is computed until the sequence is iterated. Once ctx is done the
// sequence ends; a snapshot whose lookup was in flight at that moment is
// dropped rather than emitted without telemetry.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	subscriptions []cloudstreamsv1.Subscription,
) iter.Seq[cloudstreamsv1.SubscriptionHealth] {
	if a.concurrency > 1 {
		return a.aggregateAhead(ctx, subscriptions)
	}

	return func(yield func(cloudstreamsv1.SubscriptionHealth) bool) {
		ctx, span := monitoring.StartAggregateSpan(ctx, "SubscriptionHealth.Aggregate", len(subscriptions))
		defer span.End()

		for i := range subscriptions {
			if ctx.Err() != nil {
				return
			}

			sub := &subscriptions[i]
			h := project(sub)
			if sub.Spec.Partition != nil {
				h = withTelemetry(h, a.lookup(ctx, sub))
				if ctx.Err() != nil {
					return
				}
			}

			if !yield(h) {
				return
			}
		}
	}
}

// aggregateAhead keeps a window of lookups running ahead of the consumer.
// Stopping early cancels outstanding lookups and waits for them to return.
func (a *Aggregator) aggregateAhead(
	ctx context.Context,
	subscriptions []cloudstreamsv1.Subscription,
) iter.Seq[cloudstreamsv1.SubscriptionHealth] {
	return func(yield func(cloudstreamsv1.SubscriptionHealth) bool) {
		ctx, span := monitoring.StartAggregateSpan(ctx, "SubscriptionHealth.Aggregate", len(subscriptions))
		defer span.End()

		lookupCtx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		defer func() {
			cancel()
			wg.Wait()
		}()

		pending := make([]chan telemetry, len(subscriptions))
		next := 0
		startUpTo := func(limit int) {
			for ; next < len(subscriptions) && next < limit; next++ {
				sub := &subscriptions[next]
				if sub.Spec.Partition == nil {
					continue
				}
				ch := make(chan telemetry, 1)
				pending[next] = ch
				wg.Add(1)
				go func() {
					defer wg.Done()
					ch <- a.lookup(lookupCtx, sub)
				}()
			}
		}

		for i := range subscriptions {
			if ctx.Err() != nil {
				return
			}
			startUpTo(i + a.concurrency)

			h := project(&subscriptions[i])
			if ch := pending[i]; ch != nil {
				pending[i] = nil
				select {
				case t := <-ch:
					h = withTelemetry(h, t)
				case <-ctx.Done():
					return
				}
				if ctx.Err() != nil {
					return
				}
			}

			if !yield(h) {
				return
			}
		}
	}
}

// telemetry is the outcome of one partition lookup. A failed lookup is
// simply !ok; there is no error to propagate.
type telemetry struct {
	length uint64
	ok     bool
}

func (a *Aggregator) lookup(ctx context.Context, sub *cloudstreamsv1.Subscription) telemetry {
	ref := *sub.Spec.Partition
	ctx, span := monitoring.StartLookupSpan(ctx, sub.Name, sub.Namespace, ref.String())
	defer span.End()

	started := time.Now()
	md, err := a.provider.GetPartitionMetadata(ctx, ref)
	monitoring.RecordTelemetryLookup(err, time.Since(started))
	if err != nil {
		monitoring.RecordSpanError(span, err)
		log.FromContext(ctx).V(1).Info("Partition telemetry unavailable",
			"subscription", sub.Name,
			"namespace", sub.Namespace,
			"partition", ref.String(),
			"error", err.Error(),
		)
		return telemetry{}
	}
	return telemetry{length: md.Length, ok: true}
}

// project copies the control-plane view of a subscription into a new snapshot.
func project(sub *cloudstreamsv1.Subscription) cloudstreamsv1.SubscriptionHealth {
	h := cloudstreamsv1.SubscriptionHealth{
		Name:             sub.Name,
		Namespace:        sub.Namespace,
		Phase:            status.EffectivePhase(&sub.Status),
		AckedOffset:      status.AckedOffset(&sub.Status),
		SubscriberState:  status.SubscriberState(&sub.Status),
		SubscriberReason: status.SubscriberReason(&sub.Status),
	}
	if sub.Spec.Partition != nil {
		id := sub.Spec.Partition.Id
		h.PartitionId = &id
	}
	return h
}

// withTelemetry sets PartitionLength, and Lag when the acked offset is known.
func withTelemetry(h cloudstreamsv1.SubscriptionHealth, t telemetry) cloudstreamsv1.SubscriptionHealth {
	if !t.ok {
		return h
	}
	length := t.length
	h.PartitionLength = &length
	if h.AckedOffset != nil {
		lag := Lag(length, *h.AckedOffset)
		h.Lag = &lag
	}
	return h
}
