package health

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// ClientLister lists Subscriptions through a controller-runtime reader,
// which is either the manager's informer cache or a direct API client.
type ClientLister struct {
	Reader client.Reader
}

var _ SubscriptionLister = (*ClientLister)(nil)

// NewClientLister creates a ClientLister.
func NewClientLister(r client.Reader) *ClientLister {
	return &ClientLister{Reader: r}
}

// List returns the Subscriptions in namespace (all namespaces when empty)
// that match selector (everything when nil).
func (l *ClientLister) List(
	ctx context.Context,
	namespace string,
	selector labels.Selector,
) ([]cloudstreamsv1.Subscription, error) {
	var opts []client.ListOption
	if namespace != "" {
		opts = append(opts, client.InNamespace(namespace))
	}
	if selector != nil && !selector.Empty() {
		opts = append(opts, client.MatchingLabelsSelector{Selector: selector})
	}

	list := &cloudstreamsv1.SubscriptionList{}
	if err := l.Reader.List(ctx, list, opts...); err != nil {
		return nil, fmt.Errorf("%s: %w", cloudstreamsv1.SubscriptionGroupVersionResource.GroupResource(), err)
	}
	return list.Items, nil
}
