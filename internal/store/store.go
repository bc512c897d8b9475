package store

import "sync"

// Store - единственный писатель состояния; читатели получают копии через Snapshot
type Store[T Record] struct {
	mu    sync.RWMutex
	state State[T]
}

func New[T Record]() *Store[T] {
	return &Store[T]{}
}

func (s *Store[T]) Dispatch(e Event) State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, e)
	return clone(s.state)
}

func (s *Store[T]) Snapshot() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.state)
}

func clone[T Record](s State[T]) State[T] {
	out := s
	if s.Items != nil {
		out.Items = make([]T, len(s.Items))
		copy(out.Items, s.Items)
	}
	if s.Current != nil {
		out.Current = ptr(*s.Current)
	}
	return out
}
