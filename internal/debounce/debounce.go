// Package debounce coalesces bursts of filter keys into a single call.
package debounce

import (
	"sync"
	"time"
)

const DefaultInterval = 350 * time.Millisecond

// Debouncer fires fn with the latest pushed key once no new key has arrived
// for the configured interval. A key equal to the last fired one is dropped.
type Debouncer struct {
	interval time.Duration
	fn       func(key string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	hasPend bool
	last    string
	fired   bool
	stopped bool
}

func New(interval time.Duration, fn func(key string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Push records key and restarts the quiet-period timer.
func (d *Debouncer) Push(key string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = key
	d.hasPend = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Flush fires the pending key immediately, if any.
func (d *Debouncer) Flush() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Reset forgets the last fired key so the next identical key fires again.
func (d *Debouncer) Reset() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.fired = false
	d.last = ""
	d.mu.Unlock()
}

// Stop cancels any pending call. Later pushes are ignored.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.hasPend = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.hasPend {
		d.mu.Unlock()
		return
	}
	key := d.pending
	d.hasPend = false
	if d.fired && key == d.last {
		d.mu.Unlock()
		return
	}
	d.fired = true
	d.last = key
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn(key)
	}
}
