package store

import (
	"sync"
)

// Store holds a single state value and fans every transition out to its
// observers. Notification is synchronous and ordered: observers registered
// first are notified first, and no observer ever misses a transition or sees
// two transitions out of order.
//
// The mutex is held across notification, which serializes transitions.
// Observers must not call back into the same Store from their callback.
type Store[T any] struct {
	mu        sync.Mutex
	value     T
	observers []observer[T]
	nextID    int
}

type observer[T any] struct {
	id int
	fn func(T)
}

// New builds a Store seeded with the given initial value.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value wholesale and notifies all current observers in
// subscription order.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.notifyLocked()
}

// Update computes fn(current) and behaves as Set with the result. fn must be
// a pure projection: it may be handed a snapshot that is already stale by the
// time the result is applied, so it must not have side effects.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	s.notifyLocked()
}

// Subscribe registers an observer and immediately delivers the current value
// to it. The returned cancel func removes the observer; calling it more than
// once is a no-op.
func (s *Store[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer[T]{id: id, fn: fn})
	fn(s.value)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, obs := range s.observers {
				if obs.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store[T]) notifyLocked() {
	for _, obs := range s.observers {
		obs.fn(s.value)
	}
}
