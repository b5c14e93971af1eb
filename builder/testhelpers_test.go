package builder_test

import "testing"

// assertPanics fails the test if f does not panic.
func assertPanics(t *testing.T, f func(), name string) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, but none occurred", name)
		}
	}()
	f()
}
