// Package event provides the observer lists views use to publish navigation events.
package event

import (
	"reflect"
	"sync"
)

// Listener receives events of type E.
type Listener[E any] interface {
	Handle(event E)
}

// List is an ordered set of listeners.
//
// Listeners are identified by reference, so they should be pointer (or other
// comparable) values. Adding a listener that is already registered is a no-op
// and removing an unknown listener does nothing.
type List[E any] struct {
	mu        sync.Mutex
	listeners []Listener[E]
}

// Add registers l and reports whether it was newly added.
func (ls *List[E]) Add(l Listener[E]) bool {
	if l == nil {
		return false
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.indexOf(l) >= 0 {
		return false
	}
	ls.listeners = append(ls.listeners, l)
	return true
}

// Remove unregisters l and reports whether it was registered.
func (ls *List[E]) Remove(l Listener[E]) bool {
	if l == nil {
		return false
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	i := ls.indexOf(l)
	if i < 0 {
		return false
	}
	ls.listeners = append(ls.listeners[:i], ls.listeners[i+1:]...)
	return true
}

// Fire delivers event to every listener in registration order. Listeners may
// add or remove listeners while being notified; changes apply to the next Fire.
func (ls *List[E]) Fire(event E) {
	ls.mu.Lock()
	snapshot := make([]Listener[E], len(ls.listeners))
	copy(snapshot, ls.listeners)
	ls.mu.Unlock()

	for _, l := range snapshot {
		l.Handle(event)
	}
}

func (ls *List[E]) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.listeners)
}

func (ls *List[E]) indexOf(l Listener[E]) int {
	if !reflect.TypeOf(l).Comparable() {
		return -1
	}
	for i, existing := range ls.listeners {
		if reflect.TypeOf(existing) == reflect.TypeOf(l) && existing == l {
			return i
		}
	}
	return -1
}
