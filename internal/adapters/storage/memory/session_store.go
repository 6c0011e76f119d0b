package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// SessionStore keeps sessions in process memory. Callers get deep copies, so a session
// handed out can be modified freely until it is written back.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) CreateSession(_ context.Context, session *domain.Session) error {
	c, err := clone(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return domain.ErrSessionExists
	}

	s.sessions[session.ID] = c
	return nil
}

// UpdateSession replaces everything but the conversation context.
func (s *SessionStore) UpdateSession(_ context.Context, session *domain.Session) error {
	c, err := clone(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.sessions[session.ID]
	if !exists {
		return domain.ErrSessionNotFound
	}

	c.Context = existing.Context
	s.sessions[session.ID] = c
	return nil
}

func (s *SessionStore) UpdateContext(_ context.Context, id domain.SessionID, convCtx domain.ConversationContext) error {
	var c domain.ConversationContext
	if err := copier.CopyWithOption(&c, &convCtx, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("copy context: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.sessions[id]
	if !exists {
		return domain.ErrSessionNotFound
	}

	existing.Context = c
	return nil
}

func (s *SessionStore) GetSession(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return clone(sess)
}

func clone(session *domain.Session) (*domain.Session, error) {
	var c domain.Session
	if err := copier.CopyWithOption(&c, session, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy session: %w", err)
	}
	return &c, nil
}
