// Package memory holds in-process repositories used by the demo server and
// service tests.
package memory

import (
	"fmt"
	"sync"

	"society-console-backend/internal/repository"
)

// table keeps records in insertion order. clone is applied on the way in
// and out so callers never share slices with the table.
type table[T any] struct {
	mu    sync.RWMutex
	order []string
	rows  map[string]T
	key   func(T) string
	clone func(T) T
}

func newTable[T any](key func(T) string, clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), key: key, clone: clone}
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return t.clone(row), nil
}

func (t *table[T]) insert(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.key(row)
	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("duplicate id %s", id)
	}
	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return nil
}

// upsert inserts or replaces.
func (t *table[T]) upsert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.key(row)
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(row)
}

// update replaces every row or none of them.
func (t *table[T]) update(rows ...T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range rows {
		if _, ok := t.rows[t.key(row)]; !ok {
			return fmt.Errorf("%w: %s", repository.ErrNotFound, t.key(row))
		}
	}
	for _, row := range rows {
		t.rows[t.key(row)] = t.clone(row)
	}
	return nil
}

// remove deletes the ids that exist and reports how many did.
func (t *table[T]) remove(ids ...string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := t.rows[id]; ok {
			delete(t.rows, id)
			gone[id] = true
		}
	}
	if len(gone) == 0 {
		return 0
	}
	kept := t.order[:0]
	for _, id := range t.order {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	t.order = kept
	return len(gone)
}
