// Package testutil provides test helpers shared across packages: a fake
// client preloaded with the Subscription scheme, and a wrapper around it
// that injects read failures.
//
// Example:
//
//	c := testutil.NewFakeClientWithFailures(
//	    testutil.NewSubscriptionClient(t, subs...),
//	    &testutil.FailureConfig{
//	        OnList: testutil.FailOnListNamespace("payments", testutil.ErrPermissionError),
//	    },
//	)
//
// Only reads can fail. Nothing in the health path writes to the API server,
// so writes pass straight through to the wrapped client.
package testutil
