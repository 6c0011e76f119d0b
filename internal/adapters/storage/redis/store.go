// Package redis stores sessions in Redis. A session is three keys: the session document,
// its conversation context and an RPUSH list of turns.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const keyPrefix = "farum:session:"

type Store struct {
	rs *redis.Redis
}

// NewStore connects to the configured Redis node or cluster.
func NewStore(conf redis.RedisConf) (*Store, error) {
	if conf.Type == "" {
		conf.Type = redis.NodeType
	}
	rs, err := redis.NewRedis(conf)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Store{rs: rs}, nil
}

type sessionDoc struct {
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	CheckIn   domain.CheckInState `json:"checkin"`
}

func sessionKey(id domain.SessionID) string { return keyPrefix + string(id) }
func contextKey(id domain.SessionID) string { return keyPrefix + string(id) + ":context" }
func turnsKey(id domain.SessionID) string { return keyPrefix + string(id) + ":turns" }

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	doc, err := json.Marshal(sessionDoc{
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		CheckIn:   session.CheckIn,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := s.rs.SetnxCtx(ctx, sessionKey(session.ID), string(doc))
	if err != nil {
		return fmt.Errorf("redis CreateSession: %w", err)
	}
	if !ok {
		return domain.ErrSessionExists
	}

	if err := s.writeContext(ctx, session.ID, session.Context); err != nil {
		return err
	}
	return s.appendTurns(ctx, session.ID, session.Turns)
}

// UpdateSession rewrites the session document and pushes the turns the list is missing.
// The context key is left alone.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	exists, err := s.rs.ExistsCtx(ctx, sessionKey(session.ID))
	if err != nil {
		return fmt.Errorf("redis UpdateSession: %w", err)
	}
	if !exists {
		return domain.ErrSessionNotFound
	}

	stored, err := s.rs.LlenCtx(ctx, turnsKey(session.ID))
	if err != nil {
		return fmt.Errorf("redis UpdateSession: %w", err)
	}
	if stored < len(session.Turns) {
		if err := s.appendTurns(ctx, session.ID, session.Turns[stored:]); err != nil {
			return err
		}
	}

	doc, err := json.Marshal(sessionDoc{
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		CheckIn:   session.CheckIn,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rs.SetCtx(ctx, sessionKey(session.ID), string(doc)); err != nil {
		return fmt.Errorf("redis UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateContext(ctx context.Context, id domain.SessionID, convCtx domain.ConversationContext) error {
	exists, err := s.rs.ExistsCtx(ctx, sessionKey(id))
	if err != nil {
		return fmt.Errorf("redis UpdateContext: %w", err)
	}
	if !exists {
		return domain.ErrSessionNotFound
	}
	return s.writeContext(ctx, id, convCtx)
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	raw, err := s.rs.GetCtx(ctx, sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("redis GetSession: %w", err)
	}
	if raw == "" {
		return nil, domain.ErrSessionNotFound
	}

	var doc sessionDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session := &domain.Session{
		ID:        id,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		CheckIn:   doc.CheckIn,
	}

	rawCtx, err := s.rs.GetCtx(ctx, contextKey(id))
	if err != nil {
		return nil, fmt.Errorf("redis GetSession: %w", err)
	}
	if rawCtx != "" {
		if err := json.Unmarshal([]byte(rawCtx), &session.Context); err != nil {
			return nil, fmt.Errorf("decode context: %w", err)
		}
	}

	data, err := s.rs.LrangeCtx(ctx, turnsKey(id), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("redis GetSession: %w", err)
	}
	for _, v := range data {
		var turn domain.Turn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		session.Turns = append(session.Turns, turn)
	}
	return session, nil
}

func (s *Store) writeContext(ctx context.Context, id domain.SessionID, convCtx domain.ConversationContext) error {
	data, err := json.Marshal(convCtx)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	if err := s.rs.SetCtx(ctx, contextKey(id), string(data)); err != nil {
		return fmt.Errorf("redis write context: %w", err)
	}
	return nil
}

func (s *Store) appendTurns(ctx context.Context, id domain.SessionID, turns []domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		values = append(values, string(data))
	}
	if _, err := s.rs.RpushCtx(ctx, turnsKey(id), values...); err != nil {
		return fmt.Errorf("redis append turns: %w", err)
	}
	return nil
}
