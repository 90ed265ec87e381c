package clocktest

import (
	"testing"
	"time"

	"github.com/sandeepkv93/duedate/internal/clock"
)

// FreezeAt pins c to at for the rest of the test. The freeze is released by
// tb.Cleanup, so it never outlives a failing test.
func FreezeAt(tb testing.TB, c *clock.Frozen, at time.Time) {
	tb.Helper()
	thaw := c.FreezeAt(at)
	tb.Cleanup(thaw)
}

// New returns a clock frozen at at for the duration of the test.
func New(tb testing.TB, at time.Time) *clock.Frozen {
	tb.Helper()
	c := clock.NewFrozen(clock.System{})
	FreezeAt(tb, c, at)
	return c
}
