// Package testutil provides testing utilities for tunelist.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks should be deferred at the start of tests that spawn goroutines.
// It verifies that no goroutines were leaked during the test.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// IgnoreCurrent returns goleak options that ignore goroutines already running
// when the test starts, e.g. ones left behind by a parallel test.
func IgnoreCurrent() []goleak.Option {
	return []goleak.Option{goleak.IgnoreCurrent()}
}
