// Package events provides a minimal in-process publish/subscribe emitter used
// to signal data changes between otherwise independent views.
package events

import "sync"

// Emitter delivers published values to every subscribed listener. It is a
// typed abstraction so new event kinds do not need bespoke registries.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// New creates an empty emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// Subscribe registers fn and returns a function that removes the
// registration. Subscribing the same callback twice registers it twice;
// deduplication is the caller's responsibility.
func (e *Emitter[T]) Subscribe(fn func(T)) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every currently registered listener synchronously, in
// registration order. There is no isolation between listeners: a panicking
// listener aborts delivery to the rest.
func (e *Emitter[T]) Publish(value T) {
	e.mu.Lock()
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(value)
	}
}

// Len returns the number of registered listeners.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
