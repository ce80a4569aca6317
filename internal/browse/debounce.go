package browse

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence window for facet edits. Only the
// last edit inside the window triggers a reload.
const DefaultDebounceWindow = 300 * time.Millisecond

// pendingTask is whatever a timer factory hands back so the debouncer can
// cancel a scheduled run. *time.Timer satisfies it.
type pendingTask interface {
	Stop() bool
}

// debouncer coalesces triggers into a single delayed task: each new trigger
// cancels the pending task and schedules a fresh one, so at most one task is
// ever live. The schedule func is swappable for tests.
type debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	schedule func(d time.Duration, fn func()) pendingTask
	pending  pendingTask
}

func newDebouncer(window time.Duration) *debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &debouncer{
		window: window,
		schedule: func(d time.Duration, fn func()) pendingTask {
			return time.AfterFunc(d, fn)
		},
	}
}

// Trigger (re)schedules fn to run once the window elapses with no newer trigger.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.schedule(d.window, fn)
}

// Cancel drops any pending task without running it.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
