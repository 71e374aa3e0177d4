package service

import (
	"context"
	"sync"
)

// collection is one owner's in-memory copy of a persisted list. It is
// populated from persistence on first access and afterwards only changes
// once the matching remote write has succeeded.
type collection[T any] struct {
	mu      sync.Mutex
	loaded  bool
	entries []T
}

// load fetches the entries once. Callers must hold c.mu.
func (c *collection[T]) load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	if c.loaded {
		return nil
	}
	entries, err := fetch(ctx)
	if err != nil {
		return err
	}
	c.entries = entries
	c.loaded = true
	return nil
}

// snapshot returns a copy safe to hand out. Callers must hold c.mu.
func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.entries))
	copy(out, c.entries)
	return out
}

type sessions[T any] struct {
	mu      sync.Mutex
	byOwner map[string]*collection[T]
}

func newSessions[T any]() *sessions[T] {
	return &sessions[T]{byOwner: make(map[string]*collection[T])}
}

func (s *sessions[T]) get(owner string) *collection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byOwner[owner]
	if !ok {
		c = &collection[T]{}
		s.byOwner[owner] = c
	}
	return c
}

// forget drops an owner's cached collection so the next access reloads it.
func (s *sessions[T]) forget(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byOwner, owner)
}
