package service

import (
	"context"
	"fmt"
	"sync"

	"society-console-backend/internal/logger"
)

// Change is what one command does to a collection: records to insert or
// replace, and ids to remove.
type Change[T any] struct {
	Upserts []T
	Deletes []string
}

func (c Change[T]) IsEmpty() bool {
	return len(c.Upserts) == 0 && len(c.Deletes) == 0
}

// Session holds the last collection confirmed by the repository and the
// current, possibly optimistic, view of it. Commands are applied to the
// current view before the repository round trip and rolled back on failure.
// Commands touching the same ids run one at a time.
type Session[T any] struct {
	name  string
	key   func(T) string
	clone func(T) T
	load  func(ctx context.Context) ([]T, error)
	locks *idLocks

	mu        sync.Mutex
	confirmed []T
	current   []T
	inflight  int
}

func NewSession[T any](name string, key func(T) string, clone func(T) T, load func(ctx context.Context) ([]T, error)) *Session[T] {
	return &Session[T]{name: name, key: key, clone: clone, load: load, locks: newIDLocks()}
}

// Snapshot returns a copy of the current view. With no command in flight the
// view is re-read from the repository first.
func (s *Session[T]) Snapshot(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return s.cloneAll(s.current), nil
}

// Apply runs one command. plan sees a copy of the current view and returns
// the change; persist writes it. An empty change skips persist.
func (s *Session[T]) Apply(ctx context.Context, ids []string, plan func(current []T) Change[T], persist func(ctx context.Context, c Change[T]) error) (Change[T], error) {
	unlock := s.locks.Lock(ids...)
	defer unlock()

	s.mu.Lock()
	if err := s.refreshLocked(ctx); err != nil {
		s.mu.Unlock()
		return Change[T]{}, err
	}
	change := plan(s.cloneAll(s.current))
	if change.IsEmpty() {
		s.mu.Unlock()
		return change, nil
	}
	s.current = s.patch(s.current, change)
	s.inflight++
	s.mu.Unlock()

	err := persist(ctx, change)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.current = s.revert(change)
		logger.Warn("Reverted optimistic change", "session", s.name, "upserts", len(change.Upserts), "deletes", len(change.Deletes), "error", err)
		return change, err
	}
	s.confirmed = s.patch(s.confirmed, change)
	return change, nil
}

func (s *Session[T]) refreshLocked(ctx context.Context) error {
	if s.inflight > 0 {
		return nil
	}
	items, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.name, err)
	}
	s.confirmed = s.cloneAll(items)
	s.current = s.cloneAll(items)
	return nil
}

// patch applies c to list: upserts replace in place or append, deletes drop.
func (s *Session[T]) patch(list []T, c Change[T]) []T {
	gone := make(map[string]bool, len(c.Deletes))
	for _, id := range c.Deletes {
		gone[id] = true
	}
	upserts := make(map[string]T, len(c.Upserts))
	var order []string
	for _, u := range c.Upserts {
		k := s.key(u)
		if _, seen := upserts[k]; !seen {
			order = append(order, k)
		}
		upserts[k] = u
	}

	out := make([]T, 0, len(list)+len(c.Upserts))
	for _, item := range list {
		k := s.key(item)
		if gone[k] {
			continue
		}
		if u, ok := upserts[k]; ok {
			out = append(out, s.clone(u))
			delete(upserts, k)
			continue
		}
		out = append(out, item)
	}
	for _, k := range order {
		if u, ok := upserts[k]; ok {
			out = append(out, s.clone(u))
		}
	}
	return out
}

// revert restores the ids touched by c to their confirmed state and keeps
// every other record of the current view, which may belong to other
// in-flight commands.
func (s *Session[T]) revert(c Change[T]) []T {
	touched := make(map[string]bool, len(c.Upserts)+len(c.Deletes))
	for _, u := range c.Upserts {
		touched[s.key(u)] = true
	}
	for _, id := range c.Deletes {
		touched[id] = true
	}

	current := make(map[string]T, len(s.current))
	for _, item := range s.current {
		current[s.key(item)] = item
	}

	out := make([]T, 0, len(s.confirmed))
	placed := make(map[string]bool, len(s.confirmed))
	for _, item := range s.confirmed {
		k := s.key(item)
		placed[k] = true
		if touched[k] {
			out = append(out, s.clone(item))
			continue
		}
		if cur, ok := current[k]; ok {
			out = append(out, cur)
		}
	}
	for _, item := range s.current {
		k := s.key(item)
		if !placed[k] && !touched[k] {
			out = append(out, item)
		}
	}
	return out
}

func (s *Session[T]) cloneAll(items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = s.clone(item)
	}
	return out
}
