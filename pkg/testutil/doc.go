// Package testutil provides test helpers for the dependency operator
// controllers.
//
// NewFakeClientWithFailures wraps a controller-runtime fake client so that
// individual calls can be made to fail, which is how the error paths of a
// reconciler are exercised without a running API server:
//
//	c := testutil.NewFakeClientWithFailures(base, &testutil.FailureConfig{
//	    OnStatusPatch: testutil.FailObjAfterNCalls(1, testutil.ErrInjected),
//	})
package testutil
