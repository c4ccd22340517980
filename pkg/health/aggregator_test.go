package health

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/eventstore"
)

var (
	p1 = cloudstreamsv1.PartitionReference{Type: cloudstreamsv1.PartitionBySource, Id: "https://orders.example.com"}
	p2 = cloudstreamsv1.PartitionReference{Type: cloudstreamsv1.PartitionByType, Id: "com.example.invoice.created"}
	p3 = cloudstreamsv1.PartitionReference{Type: cloudstreamsv1.PartitionBySubject, Id: "customer-42"}
)

type subOption func(*cloudstreamsv1.Subscription)

func withPartition(ref cloudstreamsv1.PartitionReference) subOption {
	return func(s *cloudstreamsv1.Subscription) {
		s.Spec.Partition = ptr.To(ref)
	}
}

func withAcked(offset uint64) subOption {
	return func(s *cloudstreamsv1.Subscription) {
		s.Status.Stream = &cloudstreamsv1.SubscriptionStreamStatus{AckedOffset: ptr.To(offset)}
	}
}

func withPhase(phase cloudstreamsv1.SubscriptionStatusPhase) subOption {
	return func(s *cloudstreamsv1.Subscription) {
		s.Status.Phase = phase
	}
}

func withSubscriber(state cloudstreamsv1.SubscriberState, reason string) subOption {
	return func(s *cloudstreamsv1.Subscription) {
		s.Status.Subscriber = &cloudstreamsv1.SubscriberStatus{State: state, Reason: reason}
	}
}

func newSubscription(name string, opts ...subOption) cloudstreamsv1.Subscription {
	s := cloudstreamsv1.Subscription{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec: cloudstreamsv1.SubscriptionSpec{
			Subscriber: cloudstreamsv1.Subscriber{Uri: "https://" + name + ".example.com/events"},
		},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// countingProvider records how many lookups were started and finished.
type countingProvider struct {
	PartitionMetadataProvider
	started  atomic.Int32
	finished atomic.Int32
}

func (p *countingProvider) GetPartitionMetadata(
	ctx context.Context,
	ref cloudstreamsv1.PartitionReference,
) (eventstore.PartitionMetadata, error) {
	p.started.Add(1)
	defer p.finished.Add(1)
	return p.PartitionMetadataProvider.GetPartitionMetadata(ctx, ref)
}

// providerFunc adapts a function to PartitionMetadataProvider.
type providerFunc func(context.Context, cloudstreamsv1.PartitionReference) (eventstore.PartitionMetadata, error)

func (f providerFunc) GetPartitionMetadata(
	ctx context.Context,
	ref cloudstreamsv1.PartitionReference,
) (eventstore.PartitionMetadata, error) {
	return f(ctx, ref)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 150)
	store.SetLength(p2, 50)
	store.SetLength(p3, 10)

	tests := map[string]struct {
		sub  cloudstreamsv1.Subscription
		want cloudstreamsv1.SubscriptionHealth
	}{
		"no partition": {
			sub: newSubscription("b",
				withAcked(3),
				withPhase(cloudstreamsv1.SubscriptionPhaseActive),
				withSubscriber(cloudstreamsv1.SubscriberStateUnreachable, "connection refused"),
			),
			want: cloudstreamsv1.SubscriptionHealth{
				Name:             "b",
				Namespace:        "default",
				Phase:            cloudstreamsv1.SubscriptionPhaseActive,
				AckedOffset:      ptr.To(uint64(3)),
				SubscriberState:  ptr.To(cloudstreamsv1.SubscriberStateUnreachable),
				SubscriberReason: ptr.To("connection refused"),
			},
		},
		"partition with acked offset": {
			sub: newSubscription("a", withPartition(p1), withAcked(100), withPhase(cloudstreamsv1.SubscriptionPhaseActive)),
			want: cloudstreamsv1.SubscriptionHealth{
				Name:            "a",
				Namespace:       "default",
				Phase:           cloudstreamsv1.SubscriptionPhaseActive,
				PartitionId:     ptr.To(p1.Id),
				AckedOffset:     ptr.To(uint64(100)),
				PartitionLength: ptr.To(uint64(150)),
				Lag:             ptr.To(int64(50)),
			},
		},
		"partition without acked offset": {
			sub: newSubscription("c", withPartition(p2)),
			want: cloudstreamsv1.SubscriptionHealth{
				Name:            "c",
				Namespace:       "default",
				Phase:           cloudstreamsv1.SubscriptionPhaseInactive,
				PartitionId:     ptr.To(p2.Id),
				PartitionLength: ptr.To(uint64(50)),
			},
		},
		"acked offset ahead of partition length": {
			sub: newSubscription("d", withPartition(p3), withAcked(25)),
			want: cloudstreamsv1.SubscriptionHealth{
				Name:            "d",
				Namespace:       "default",
				Phase:           cloudstreamsv1.SubscriptionPhaseInactive,
				PartitionId:     ptr.To(p3.Id),
				AckedOffset:     ptr.To(uint64(25)),
				PartitionLength: ptr.To(uint64(10)),
				Lag:             ptr.To(int64(-15)),
			},
		},
		"unknown partition": {
			sub: newSubscription("e",
				withPartition(cloudstreamsv1.PartitionReference{Type: cloudstreamsv1.PartitionBySource, Id: "nowhere"}),
				withAcked(1),
				withSubscriber(cloudstreamsv1.SubscriberStateReachable, ""),
			),
			want: cloudstreamsv1.SubscriptionHealth{
				Name:            "e",
				Namespace:       "default",
				Phase:           cloudstreamsv1.SubscriptionPhaseInactive,
				PartitionId:     ptr.To("nowhere"),
				AckedOffset:     ptr.To(uint64(1)),
				SubscriberState: ptr.To(cloudstreamsv1.SubscriberStateReachable),
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, concurrency := range []int{1, 4} {
				agg := NewAggregator(store, WithConcurrency(concurrency))
				got := slices.Collect(agg.Aggregate(t.Context(), []cloudstreamsv1.Subscription{tc.sub}))
				if diff := cmp.Diff([]cloudstreamsv1.SubscriptionHealth{tc.want}, got); diff != "" {
					t.Errorf("Aggregate() with concurrency %d mismatch (-want +got):\n%s", concurrency, diff)
				}
			}
		})
	}
}

func TestAggregate_Example(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 150)
	store.SetLength(p2, 50)

	subs := []cloudstreamsv1.Subscription{
		newSubscription("a", withPartition(p1), withAcked(100)),
		newSubscription("b"),
		newSubscription("c", withPartition(p2)),
	}

	got := slices.Collect(NewAggregator(store).Aggregate(t.Context(), subs))
	want := []cloudstreamsv1.SubscriptionHealth{
		{
			Name:            "a",
			Namespace:       "default",
			Phase:           cloudstreamsv1.SubscriptionPhaseInactive,
			PartitionId:     ptr.To(p1.Id),
			AckedOffset:     ptr.To(uint64(100)),
			PartitionLength: ptr.To(uint64(150)),
			Lag:             ptr.To(int64(50)),
		},
		{
			Name:      "b",
			Namespace: "default",
			Phase:     cloudstreamsv1.SubscriptionPhaseInactive,
		},
		{
			Name:            "c",
			Namespace:       "default",
			Phase:           cloudstreamsv1.SubscriptionPhaseInactive,
			PartitionId:     ptr.To(p2.Id),
			PartitionLength: ptr.To(uint64(50)),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_LookupFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 150)
	store.SetLength(p3, 9)
	store.Fail(p2, eventstore.ErrUnavailable)

	subs := []cloudstreamsv1.Subscription{
		newSubscription("a", withPartition(p1), withAcked(100)),
		newSubscription("broken",
			withPartition(p2),
			withAcked(7),
			withPhase(cloudstreamsv1.SubscriptionPhaseActive),
			withSubscriber(cloudstreamsv1.SubscriberStateReachable, "ok"),
		),
		newSubscription("c", withPartition(p3), withAcked(4)),
	}

	for _, concurrency := range []int{1, 3} {
		got := slices.Collect(NewAggregator(store, WithConcurrency(concurrency)).Aggregate(t.Context(), subs))
		if len(got) != 3 {
			t.Fatalf("Aggregate() with concurrency %d produced %d records, want 3", concurrency, len(got))
		}

		want := cloudstreamsv1.SubscriptionHealth{
			Name:             "broken",
			Namespace:        "default",
			Phase:            cloudstreamsv1.SubscriptionPhaseActive,
			PartitionId:      ptr.To(p2.Id),
			AckedOffset:      ptr.To(uint64(7)),
			SubscriberState:  ptr.To(cloudstreamsv1.SubscriberStateReachable),
			SubscriberReason: ptr.To("ok"),
		}
		if diff := cmp.Diff(want, got[1]); diff != "" {
			t.Errorf("degraded record mismatch (-want +got):\n%s", diff)
		}
		if got[2].Lag == nil || *got[2].Lag != 5 {
			t.Errorf("record after failure has lag %v, want 5", got[2].Lag)
		}
	}
}

func TestAggregate_IsLazy(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 1)
	provider := &countingProvider{PartitionMetadataProvider: store}

	seq := NewAggregator(provider).Aggregate(t.Context(), []cloudstreamsv1.Subscription{
		newSubscription("a", withPartition(p1)),
		newSubscription("b", withPartition(p1)),
	})
	if n := provider.started.Load(); n != 0 {
		t.Fatalf("%d lookups before iteration, want 0", n)
	}

	for range seq {
		break
	}
	if n := provider.started.Load(); n != 1 {
		t.Errorf("%d lookups after taking one record, want 1", n)
	}
}

func TestAggregate_PreservesOrder(t *testing.T) {
	t.Parallel()

	refs := []cloudstreamsv1.PartitionReference{p1, p2, p3}
	var subs []cloudstreamsv1.Subscription
	var wantNames []string
	for i := range 12 {
		name := string(rune('a' + i))
		wantNames = append(wantNames, name)
		if i%4 == 3 {
			subs = append(subs, newSubscription(name))
			continue
		}
		subs = append(subs, newSubscription(name, withPartition(refs[i%3])))
	}

	// Earlier partitions answer slower so lookups complete out of order.
	delays := map[cloudstreamsv1.PartitionReference]time.Duration{
		p1: 15 * time.Millisecond,
		p2: 5 * time.Millisecond,
		p3: 0,
	}
	var inFlight, maxInFlight atomic.Int32
	provider := providerFunc(func(ctx context.Context, ref cloudstreamsv1.PartitionReference) (eventstore.PartitionMetadata, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		select {
		case <-time.After(delays[ref]):
		case <-ctx.Done():
			return eventstore.PartitionMetadata{}, ctx.Err()
		}
		return eventstore.PartitionMetadata{Length: 1}, nil
	})

	for _, concurrency := range []int{1, 3} {
		maxInFlight.Store(0)

		var gotNames []string
		for h := range NewAggregator(provider, WithConcurrency(concurrency)).Aggregate(t.Context(), subs) {
			gotNames = append(gotNames, h.Name)
		}
		if diff := cmp.Diff(wantNames, gotNames); diff != "" {
			t.Errorf("order with concurrency %d mismatch (-want +got):\n%s", concurrency, diff)
		}
		if m := maxInFlight.Load(); int(m) > concurrency {
			t.Errorf("%d lookups in flight with concurrency %d", m, concurrency)
		}
	}
}

func TestAggregate_CancelAfterN(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 10)
	store.SetLength(p2, 20)

	var subs []cloudstreamsv1.Subscription
	for i := range 6 {
		ref := p1
		if i%2 == 1 {
			ref = p2
		}
		subs = append(subs, newSubscription(string(rune('a'+i)), withPartition(ref)))
	}

	for _, concurrency := range []int{1, 4} {
		for _, n := range []int{0, 1, 3} {
			ctx, cancel := context.WithCancel(t.Context())
			if n == 0 {
				cancel()
			}

			var got []string
			for h := range NewAggregator(store, WithConcurrency(concurrency)).Aggregate(ctx, subs) {
				got = append(got, h.Name)
				if len(got) == n {
					cancel()
				}
			}
			cancel()

			if len(got) != n {
				t.Errorf("concurrency %d: cancelled after %d records but got %v", concurrency, n, got)
			}
		}
	}
}

func TestAggregate_CancelDuringLookupDropsRecord(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	provider := providerFunc(func(ctx context.Context, ref cloudstreamsv1.PartitionReference) (eventstore.PartitionMetadata, error) {
		if ref == p2 {
			cancel()
			return eventstore.PartitionMetadata{}, ctx.Err()
		}
		return eventstore.PartitionMetadata{Length: 1}, nil
	})

	subs := []cloudstreamsv1.Subscription{
		newSubscription("a", withPartition(p1)),
		newSubscription("b", withPartition(p2)),
		newSubscription("c", withPartition(p1)),
	}

	var got []string
	for h := range NewAggregator(provider).Aggregate(ctx, subs) {
		got = append(got, h.Name)
	}
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EarlyStopDrainsLookups(t *testing.T) {
	t.Parallel()

	provider := &countingProvider{
		PartitionMetadataProvider: providerFunc(func(ctx context.Context, _ cloudstreamsv1.PartitionReference) (eventstore.PartitionMetadata, error) {
			select {
			case <-time.After(time.Second):
				return eventstore.PartitionMetadata{Length: 1}, nil
			case <-ctx.Done():
				return eventstore.PartitionMetadata{}, ctx.Err()
			}
		}),
	}

	subs := []cloudstreamsv1.Subscription{
		newSubscription("a"),
		newSubscription("b", withPartition(p1)),
		newSubscription("c", withPartition(p2)),
		newSubscription("d", withPartition(p3)),
	}

	start := time.Now()
	for range NewAggregator(provider, WithConcurrency(4)).Aggregate(t.Context(), subs) {
		break
	}

	if started, finished := provider.started.Load(), provider.finished.Load(); started != finished {
		t.Errorf("%d lookups started but only %d finished after iteration stopped", started, finished)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("stopping iteration took %v, outstanding lookups were not cancelled", elapsed)
	}
}

func TestAggregate_RecordsAreIndependent(t *testing.T) {
	t.Parallel()

	store := eventstore.NewStatic()
	store.SetLength(p1, 5)
	subs := []cloudstreamsv1.Subscription{
		newSubscription("a", withPartition(p1), withAcked(2)),
	}

	got := slices.Collect(NewAggregator(store).Aggregate(t.Context(), subs))
	*got[0].AckedOffset = 99
	*got[0].PartitionId = "mutated"

	if *subs[0].Status.Stream.AckedOffset != 2 {
		t.Errorf("input acked offset changed to %d", *subs[0].Status.Stream.AckedOffset)
	}
	if subs[0].Spec.Partition.Id != p1.Id {
		t.Errorf("input partition id changed to %q", subs[0].Spec.Partition.Id)
	}

	again := slices.Collect(NewAggregator(store).Aggregate(t.Context(), subs))
	if *again[0].Lag != 3 {
		t.Errorf("second pass lag = %d, want 3", *again[0].Lag)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, concurrency := range []int{1, 2} {
		got := slices.Collect(NewAggregator(eventstore.NewStatic(), WithConcurrency(concurrency)).Aggregate(t.Context(), nil))
		if len(got) != 0 {
			t.Errorf("Aggregate(nil) with concurrency %d = %v, want empty", concurrency, got)
		}
	}
}

func TestAggregate_ProviderErrorKinds(t *testing.T) {
	t.Parallel()

	errs := map[string]error{
		"not found":   eventstore.ErrPartitionNotFound,
		"unavailable": eventstore.ErrUnavailable,
		"deadline":    context.DeadlineExceeded,
		"other":       errors.New("boom"),
	}

	for name, err := range errs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := eventstore.NewStatic()
			store.Fail(p1, err)
			got := slices.Collect(NewAggregator(store).Aggregate(t.Context(), []cloudstreamsv1.Subscription{
				newSubscription("a", withPartition(p1), withAcked(1)),
			}))
			if len(got) != 1 {
				t.Fatalf("got %d records, want 1", len(got))
			}
			if got[0].PartitionLength != nil || got[0].Lag != nil {
				t.Errorf("telemetry present after %v: length=%v lag=%v", err, got[0].PartitionLength, got[0].Lag)
			}
		})
	}
}
