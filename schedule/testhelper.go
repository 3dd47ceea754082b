// ABOUTME: Test helper for packages that drive the engine
// ABOUTME: In-memory store, fixed clock, UTC calendar, no demo data

package schedule

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/touchbase/store"
)

// NewTestEngine opens an engine over an in-memory store with its clock
// frozen at now. Extra options are applied last.
func NewTestEngine(t testing.TB, now time.Time, opts ...Option) (*Engine, *FixedClock) {
	t.Helper()

	clock := NewFixedClock(now)
	base := []Option{
		WithClock(clock),
		WithLocation(time.UTC),
		WithLogger(log.New(io.Discard)),
		WithSeed(false),
	}

	e, err := Open(store.New(store.NewMemory(), log.New(io.Discard)), append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to open test engine: %v", err)
	}
	return e, clock
}
