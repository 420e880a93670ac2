// Package testutil starts components in tests and stops them when the test
// ends.
//
//	testutil.T(t).Setup(channel)
//	testutil.T(t).WaitHealthy(channel, 2*time.Second)
package testutil
