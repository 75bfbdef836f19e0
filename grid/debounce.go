package grid

import (
	"sync"
	"time"
)

// RecomputeDelay is how long after pointer motion stops before the grid is
// recomputed. Continuous drags never recompute per move event.
const RecomputeDelay = 120 * time.Millisecond

// Debouncer coalesces recompute triggers: scheduling cancels any pending
// callback, so only the last-scheduled function runs.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arranges fn to run after delay, superseding any pending schedule.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
