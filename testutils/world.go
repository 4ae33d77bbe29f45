package testutils

import (
	"testing"
	"time"

	"pkg.world.dev/lazyecs"
)

// NewTestWorld creates a World suitable for unit tests, namespaced "test" so
// log lines from different suites are tellable apart. Options are applied
// after the namespace, so a test can still override it.
func NewTestWorld(t testing.TB, opts ...lazyecs.WorldOption) *lazyecs.World {
	t.Helper()
	opts = append([]lazyecs.WorldOption{lazyecs.WithNamespace("test")}, opts...)
	world, err := lazyecs.NewWorld(opts...)
	if err != nil {
		t.Fatalf("Unable to initialize test world: %v", err)
	}
	return world
}

// SetTestTimeout fails the test by panic if it runs longer than timeout.
// Useful for model-based tests that could loop forever on a logic bug.
func SetTestTimeout(t *testing.T, timeout time.Duration) {
	if _, ok := t.Deadline(); ok {
		// A deadline has already been set. Don't add an additional deadline.
		return
	}
	success := make(chan bool)
	t.Cleanup(func() {
		success <- true
	})
	go func() {
		select {
		case <-success:
			// test was successful. Do nothing
		case <-time.After(timeout):
			panic("test timed out")
		}
	}()
}
