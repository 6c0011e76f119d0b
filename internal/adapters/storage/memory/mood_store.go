package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// MoodStore is an in-memory mood log. It is NOT persistent and is only suitable for
// development / local mode.
type MoodStore struct {
	mu        sync.RWMutex
	bySession map[domain.SessionID][]domain.MoodEntry
}

func NewMoodStore() *MoodStore {
	return &MoodStore{
		bySession: make(map[domain.SessionID][]domain.MoodEntry),
	}
}

// AppendMood records an entry. Entries are expected in chronological order.
func (s *MoodStore) AppendMood(_ context.Context, sessionID domain.SessionID, entry domain.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bySession[sessionID] = append(s.bySession[sessionID], entry)
	return nil
}

// RecentMoods returns the last `limit` entries, oldest first.
// If limit <= 0, returns all.
func (s *MoodStore) RecentMoods(_ context.Context, sessionID domain.SessionID, limit int) ([]domain.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.bySession[sessionID]
	if len(entries) == 0 {
		return []domain.MoodEntry{}, nil
	}

	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	out := make([]domain.MoodEntry, limit)
	copy(out, entries[len(entries)-limit:])
	return out, nil
}
