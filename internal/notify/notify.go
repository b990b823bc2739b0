// Package notify is an in-process notification fan-out. Producers publish
// without knowing how notifications are displayed; the monitor uses it to
// surface arbitrage opportunities.
package notify

import (
	"log"
	"sync"
	"time"
)

// Notification types.
const (
	TypeArbitrage = "arbitrage"
	TypeInfo      = "info"
)

// Notification is one message for a generic notification sink.
type Notification struct {
	Title    string        `json:"title"`
	Body     string        `json:"body"`
	Type     string        `json:"type"`
	Duration time.Duration `json:"duration"`
}

// Listener consumes published notifications.
type Listener func(Notification)

// Registry fans notifications out synchronously to all currently registered
// listeners. Delivery is at-least-once per registered listener with no
// ordering guarantee between listeners.
type Registry struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its unsubscribe handle.
func (r *Registry) Subscribe(fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Publish delivers n to every registered listener. A panicking listener is
// recovered and logged so it cannot poison the rest.
func (r *Registry) Publish(n Notification) {
	r.mu.Lock()
	listeners := make([]Listener, 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("notify: listener panicked: %v", rec)
				}
			}()
			fn(n)
		}()
	}
}
