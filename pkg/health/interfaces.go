package health

import (
	"context"

	"k8s.io/apimachinery/pkg/labels"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
	"github.com/cloud-streams/cloud-streams-operator/pkg/eventstore"
)

// SubscriptionLister resolves the subscriptions a query applies to.
// The returned slice is treated as authoritative and already filtered.
type SubscriptionLister interface {
	List(ctx context.Context, namespace string, selector labels.Selector) ([]cloudstreamsv1.Subscription, error)
}

// PartitionMetadataProvider reports live telemetry for a partition.
// Any error means the telemetry is unavailable.
type PartitionMetadataProvider interface {
	GetPartitionMetadata(ctx context.Context, ref cloudstreamsv1.PartitionReference) (eventstore.PartitionMetadata, error)
}
