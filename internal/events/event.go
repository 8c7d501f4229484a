// Package events provides the typed, synchronous event bus used to announce
// build configuration changes to the inputs that render them.
//
// Dispatch is single-threaded and cooperative: listeners run on the emitting
// goroutine, in registration order. An Emit made while a dispatch is already
// running (for example from inside a listener) is queued and delivered once
// the current dispatch completes, so listeners never recurse into each other.
package events

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// EventID identifies one logical change. Listeners use it to tell apart
// notifications that were caused by the same user interaction.
type EventID uint64

var lastEventID atomic.Uint64

// NextEventID returns a new process-unique event ID
func NextEventID() EventID {
	return EventID(lastEventID.Add(1))
}

// Listener receives the event ID and payload of an emitted event
type Listener[T any] func(eventID EventID, payload T)

type pending[T any] struct {
	eventID EventID
	payload T
}

type listenerEntry[T any] struct {
	id       uint64
	listener Listener[T]
}

// Event is a typed publish/subscribe channel
type Event[T any] struct {
	name string

	mu          sync.Mutex
	listeners   []listenerEntry[T]
	nextID      uint64
	queue       []pending[T]
	dispatching bool

	frozen  int
	flushed *pending[T]
}

// New creates a named event. The name only shows up in logs.
func New[T any](name string) *Event[T] {
	return &Event[T]{name: name}
}

// Name returns the event name
func (e *Event[T]) Name() string {
	return e.name
}

// On registers a listener. The returned subscription removes it again.
func (e *Event[T]) On(listener Listener[T]) *Subscription {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry[T]{id: id, listener: listener})
	e.mu.Unlock()

	return newSubscription(func() {
		e.off(id)
	})
}

// Len returns the number of registered listeners
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

func (e *Event[T]) off(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, entry := range e.listeners {
		if entry.id == id {
			// copy so a running dispatch keeps iterating its own slice
			next := make([]listenerEntry[T], 0, len(e.listeners)-1)
			next = append(next, e.listeners[:i]...)
			e.listeners = append(next, e.listeners[i+1:]...)
			return
		}
	}
}

// Emit notifies every listener. While the event is frozen by a batch only
// the latest emit is kept and delivered when the batch ends.
func (e *Event[T]) Emit(eventID EventID, payload T) {
	e.mu.Lock()
	if e.frozen > 0 {
		e.flushed = &pending[T]{eventID: eventID, payload: payload}
		e.mu.Unlock()
		return
	}

	e.queue = append(e.queue, pending[T]{eventID: eventID, payload: payload})
	if e.dispatching {
		e.mu.Unlock()
		return
	}
	e.dispatching = true
	e.mu.Unlock()

	e.drain()
}

func (e *Event[T]) drain() {
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.dispatching = false
			e.mu.Unlock()
			return
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		listeners := e.listeners
		e.mu.Unlock()

		for _, entry := range listeners {
			e.notify(entry.listener, next)
		}
	}
}

func (e *Event[T]) notify(listener Listener[T], p pending[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Internalf("listener panicked: %v", r).
				WithMeta("event", e.name).
				WithMeta("event_id", uint64(p.eventID))
			slog.Error("event listener failed",
				"event", e.name,
				"event_id", uint64(p.eventID),
				"error", err)
		}
	}()
	listener(p.eventID, p.payload)
}

func (e *Event[T]) freeze() {
	e.mu.Lock()
	e.frozen++
	e.mu.Unlock()
}

func (e *Event[T]) thaw() {
	e.mu.Lock()
	if e.frozen == 0 {
		e.mu.Unlock()
		panic(fmt.Sprintf("events: thaw of %s without freeze", e.name))
	}
	e.frozen--
	if e.frozen > 0 || e.flushed == nil {
		e.mu.Unlock()
		return
	}
	p := *e.flushed
	e.flushed = nil
	e.mu.Unlock()

	e.Emit(p.eventID, p.payload)
}
