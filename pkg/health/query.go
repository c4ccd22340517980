package health

import (
	"context"
	"fmt"
	"iter"

	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/log"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// Query selects the subscriptions to report on.
type Query struct {
	// Namespace restricts the query to one namespace. Empty means all namespaces.
	Namespace string

	// Selector filters subscriptions by label. Nil matches everything.
	Selector labels.Selector
}

// QueryHandler answers health queries.
type QueryHandler struct {
	lister     SubscriptionLister
	aggregator *Aggregator
}

// NewQueryHandler creates a QueryHandler.
func NewQueryHandler(lister SubscriptionLister, aggregator *Aggregator) *QueryHandler {
	return &QueryHandler{
		lister:     lister,
		aggregator: aggregator,
	}
}

// Handle lists the subscriptions matching q and returns the lazy sequence of
// their health snapshots.
//
// The only error is a listing failure, returned before any snapshot exists.
// Event store problems never fail the query; they show up as snapshots
// without partition telemetry.
func (h *QueryHandler) Handle(ctx context.Context, q Query) (iter.Seq[cloudstreamsv1.SubscriptionHealth], error) {
	subscriptions, err := h.lister.List(ctx, q.Namespace, q.Selector)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	log.FromContext(ctx).V(1).Info("Listed subscriptions for health query",
		"namespace", q.Namespace,
		"count", len(subscriptions),
	)

	return h.aggregator.Aggregate(ctx, subscriptions), nil
}
