package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	cloudstreamsv1 "github.com/cloud-streams/cloud-streams-operator/api/v1"
)

// Scheme returns a new scheme with the cloud-streams.io types registered.
func Scheme(t testing.TB) *runtime.Scheme {
	t.Helper()

	s := runtime.NewScheme()
	if err := cloudstreamsv1.AddToScheme(s); err != nil {
		t.Fatalf("Failed to register cloud-streams.io types: %v", err)
	}
	return s
}

// NewSubscriptionClient returns a fake client seeded with subs.
func NewSubscriptionClient(t testing.TB, subs ...*cloudstreamsv1.Subscription) client.Client {
	t.Helper()

	b := fake.NewClientBuilder().
		WithScheme(Scheme(t)).
		WithStatusSubresource(&cloudstreamsv1.Subscription{})
	for _, s := range subs {
		b = b.WithObjects(s)
	}
	return b.Build()
}

// FailureConfig configures when the fake client should return errors.
type FailureConfig struct {
	// OnList is called before List operations with the resolved list options.
	// Return non-nil to fail the operation.
	OnList func(list client.ObjectList, opts *client.ListOptions) error
}

// fakeClientWithFailures wraps a real fake client and injects failures based on configuration.
type fakeClientWithFailures struct {
	client.Client
	config *FailureConfig
}

// NewFakeClientWithFailures creates a fake client that can be configured to fail lists.
func NewFakeClientWithFailures(baseClient client.Client, config *FailureConfig) client.Client {
	if config == nil {
		config = &FailureConfig{}
	}
	return &fakeClientWithFailures{
		Client: baseClient,
		config: config,
	}
}

func (c *fakeClientWithFailures) List(
	ctx context.Context,
	list client.ObjectList,
	opts ...client.ListOption,
) error {
	if c.config.OnList != nil {
		listOpts := &client.ListOptions{}
		listOpts.ApplyOptions(opts)
		if err := c.config.OnList(list, listOpts); err != nil {
			return err
		}
	}
	return c.Client.List(ctx, list, opts...)
}

// Helper functions for common failure scenarios

// FailOnListNamespace returns an error when a List is scoped to namespace.
// An empty namespace matches cluster-wide lists.
func FailOnListNamespace(namespace string, err error) func(client.ObjectList, *client.ListOptions) error {
	return func(_ client.ObjectList, opts *client.ListOptions) error {
		if opts.Namespace == namespace {
			return err
		}
		return nil
	}
}

// AlwaysFailList returns the given error for every List.
func AlwaysFailList(err error) func(client.ObjectList, *client.ListOptions) error {
	return func(client.ObjectList, *client.ListOptions) error {
		return err
	}
}

// FailListAfterNCalls returns a List failure function that fails after N successful calls.
func FailListAfterNCalls(n int, err error) func(client.ObjectList, *client.ListOptions) error {
	var count atomic.Int32
	return func(client.ObjectList, *client.ListOptions) error {
		if int(count.Add(1)) > n {
			return err
		}
		return nil
	}
}

// Common errors for testing
var (
	ErrInjected        = fmt.Errorf("injected test error")
	ErrNetworkTimeout  = fmt.Errorf("network timeout")
	ErrPermissionError = fmt.Errorf("permission denied")
)
