package conversation

import (
	"sync"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// keyedMutex serialises work per session. Entries are dropped when nobody holds them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// Lock blocks until id is free and returns the unlock function.
func (k *keyedMutex) Lock(id domain.SessionID) func() {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
