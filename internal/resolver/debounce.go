// Package resolver schedules debounced, cancellable lookups keyed by trade
// intent. Editing a trade form fires a resolution request on every change to
// (fund, date, cutoff flag); the debouncer absorbs rapid input and
// guarantees that a newer request for the same key supersedes the in-flight
// one, so a stale settlement value can never be applied against the wrong
// date.
package resolver

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is how long input must be quiet before a lookup is issued.
const DefaultDelay = 500 * time.Millisecond

type task struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// Debouncer runs at most one task per key. Trigger cancels the previous
// task for the key, both its pending timer and, via context, any lookup it
// had already started.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	tasks  map[string]*task
	closed bool
}

// New creates a Debouncer with the given quiet delay; delay <= 0 uses
// DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, tasks: make(map[string]*task)}
}

// Trigger schedules fn to run after the quiet delay, superseding any
// previous task for the same key. fn receives a context that is cancelled
// if the key is triggered again, cancelled explicitly, or the debouncer is
// closed; fn must stop and discard its result when the context ends.
func (d *Debouncer) Trigger(key string, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if prev, ok := d.tasks[key]; ok {
		prev.timer.Stop()
		prev.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel}
	t.timer = time.AfterFunc(d.delay, func() {
		defer cancel()

		d.mu.Lock()
		if d.tasks[key] == t {
			delete(d.tasks, key)
		}
		d.mu.Unlock()

		if ctx.Err() == nil {
			fn(ctx)
		}
	})
	d.tasks[key] = t
}

// Cancel abandons any pending or in-flight task for the key. Used when the
// owning form is disposed so a late result is discarded rather than applied.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.tasks[key]; ok {
		t.timer.Stop()
		t.cancel()
		delete(d.tasks, key)
	}
}

// Close cancels everything and rejects further triggers.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for key, t := range d.tasks {
		t.timer.Stop()
		t.cancel()
		delete(d.tasks, key)
	}
}
