package services

import "sync"

// Selection is a single-value cell with last-value replay. Publish stores the value and
// calls every subscriber synchronously, in subscription order. A new subscriber is called
// with the current value before Subscribe returns.
//
// Subscribers must not Publish to the cell they are subscribed to.
type Selection[T any] struct {
	deliver sync.Mutex // serializes Publish and the replay in Subscribe

	mu    sync.RWMutex
	value T
	subs  []subscriber[T]
	next  int
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func NewSelection[T any](initial T) *Selection[T] {
	return &Selection[T]{value: initial}
}

// Value returns the most recently published value.
func (s *Selection[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Selection[T]) Publish(v T) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and returns a function that removes it. Calling the returned
// function more than once is a no-op.
func (s *Selection[T]) Subscribe(fn func(T)) func() {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
