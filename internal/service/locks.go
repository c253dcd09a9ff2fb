package service

import (
	"slices"
	"sync"
)

// idLocks is a keyed mutex. Locking a set of ids takes them in sorted order
// so overlapping sets never deadlock.
type idLocks struct {
	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func newIDLocks() *idLocks {
	return &idLocks{locks: make(map[string]*idLock)}
}

// Lock blocks until every id is held and returns the release func.
func (l *idLocks) Lock(ids ...string) (unlock func()) {
	keys := slices.Clone(ids)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]*idLock, 0, len(keys))
	for _, k := range keys {
		l.mu.Lock()
		lk, ok := l.locks[k]
		if !ok {
			lk = &idLock{}
			l.locks[k] = lk
		}
		lk.refs++
		l.mu.Unlock()

		lk.mu.Lock()
		held = append(held, lk)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, keys[i])
			}
			l.mu.Unlock()
		}
	}
}
