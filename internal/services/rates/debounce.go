package rates

import (
	"sync"
	"time"
)

// DebounceDelay is the quiet period before a keystroke triggers a
// conversion fetch.
const DebounceDelay = 300 * time.Millisecond

// Debouncer schedules work after a quiet period. Each Schedule supersedes
// the previous one; callers use the stale check to discard results of
// superseded runs so the latest input always wins.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule runs fn after the quiet period, cancelling any pending run. fn
// receives a stale check: once it reports true, a newer input has arrived
// and the current result must be discarded.
func (d *Debouncer) Schedule(fn func(stale func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	gen := d.seq
	stale := func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return gen != d.seq
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		fn(stale)
	})
}

// Stop cancels any pending run and invalidates in-flight results.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
