// Package badgerstore persists sessions in an embedded Badger database, one JSON document per
// session under the key "session:<id>".
package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

const (
	keyPrefix      = "session:"
	maxTxnAttempts = 3
)

type Store struct {
	db *badger.DB
}

// NewStore opens (or creates) the database in dir.
func NewStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)
	return open(opts)
}

// NewInMemoryStore opens a throwaway database that lives only in process memory.
func NewInMemoryStore() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(id domain.SessionID) []byte {
	return []byte(keyPrefix + string(id))
}

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(key(session.ID))
		if err == nil {
			return domain.ErrSessionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return put(txn, session)
	})
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var session *domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		session, err = get(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession replaces everything but the stored conversation context.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		existing, err := get(txn, session.ID)
		if err != nil {
			return err
		}
		updated := *session
		updated.Context = existing.Context
		return put(txn, &updated)
	})
}

func (s *Store) UpdateContext(ctx context.Context, id domain.SessionID, convCtx domain.ConversationContext) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		existing, err := get(txn, id)
		if err != nil {
			return err
		}
		existing.Context = convCtx
		return put(txn, existing)
	})
}

// update retries read-modify-write transactions that lost a conflict.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 1; attempt <= maxTxnAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		observability.Logger().Debugw("badger transaction conflict, retrying", "attempt", attempt)
	}
	return err
}

func get(txn *badger.Txn, id domain.SessionID) (*domain.Session, error) {
	item, err := txn.Get(key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &session)
	}); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func put(txn *badger.Txn, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	return txn.Set(key(session.ID), data)
}
