// Package exporter publishes subscription health as Prometheus gauges on a
// fixed interval, so lag can be alerted on without polling the health API.
package exporter

import (
	"context"
	"fmt"
	"iter"
	"time"

	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/health"
	"github.com/cloud-streams/cloud-streams-operator/pkg/monitoring"
)

// DefaultInterval is the time between two export passes.
const DefaultInterval = 30 * time.Second

// Querier answers subscription health queries.
type Querier interface {
	Handle(ctx context.Context, q health.Query) (iter.Seq[cloudstreamsv1.SubscriptionHealth], error)
}

// Exporter periodically queries the health of every subscription in the
// cluster and mirrors the result into the monitoring gauges.
type Exporter struct {
	queries  Querier
	interval time.Duration

	// exported holds the subscriptions published by the last complete pass.
	exported map[types.NamespacedName]struct{}
}

var (
	_ manager.Runnable               = (*Exporter)(nil)
	_ manager.LeaderElectionRunnable = (*Exporter)(nil)
)

// New creates an Exporter. A non-positive interval selects DefaultInterval.
func New(queries Querier, interval time.Duration) *Exporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Exporter{
		queries:  queries,
		interval: interval,
		exported: map[types.NamespacedName]struct{}{},
	}
}

// NeedLeaderElection implements manager.LeaderElectionRunnable. Every replica
// exports, since each one serves its own /metrics.
func (e *Exporter) NeedLeaderElection() bool {
	return false
}

// Start exports immediately and then once per interval until ctx is done.
func (e *Exporter) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("health-exporter")
	ctx = log.IntoContext(ctx, logger)

	logger.Info("Starting subscription health exporter", "interval", e.interval.String())
	wait.UntilWithContext(ctx, func(ctx context.Context) {
		if err := e.Export(ctx); err != nil && ctx.Err() == nil {
			logger.Error(err, "Subscription health export failed")
		}
	}, e.interval)
	return nil
}

// Export runs one pass. Series of subscriptions missing from a complete pass
// are deleted. A pass that fails or is cancelled leaves the previous series
// in place.
func (e *Exporter) Export(ctx context.Context) error {
	ctx, span := monitoring.StartChildSpan(ctx, "SubscriptionHealth.Export")
	defer span.End()

	seq, err := e.queries.Handle(ctx, health.Query{})
	if err != nil {
		monitoring.RecordSpanError(span, err)
		return fmt.Errorf("failed to query subscription health: %w", err)
	}

	seen := make(map[types.NamespacedName]struct{}, len(e.exported))
	for h := range seq {
		monitoring.SetSubscriptionHealth(&h)
		seen[types.NamespacedName{Namespace: h.Namespace, Name: h.Name}] = struct{}{}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for key := range e.exported {
		if _, ok := seen[key]; !ok {
			monitoring.DeleteSubscriptionHealth(key.Name, key.Namespace)
		}
	}
	e.exported = seen

	log.FromContext(ctx).V(1).Info("Exported subscription health", "subscriptions", len(seen))
	return nil
}
