package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (FARUM_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) turnsCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(sessionID).Collection("turns")
}

func (s *Store) turnDoc(sessionID domain.SessionID, turnID domain.TurnID) *firestore.DocumentRef {
	return s.turnsCol(sessionID).Doc(string(turnID))
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

// Check-in state and context are kept as JSON so they match the API shape.
type sessionDoc struct {
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
	CheckIn   string    `firestore:"checkin"`
	Context   string    `firestore:"context"`
	TurnCount int       `firestore:"turn_count"`
}

type turnDoc struct {
	Seq            int       `firestore:"seq"`
	Speaker        string    `firestore:"speaker"`
	Text           string    `firestore:"text"`
	CreatedAt      time.Time `firestore:"created_at"`
	CrisisTier     string    `firestore:"crisis_tier"`
	Classification string    `firestore:"classification,omitempty"`
}

func toTurnDoc(seq int, t domain.Turn) (turnDoc, error) {
	doc := turnDoc{
		Seq:        seq,
		Speaker:    string(t.Speaker),
		Text:       t.Text,
		CreatedAt:  t.Timestamp,
		CrisisTier: t.CrisisTier.String(),
	}
	if t.Classification != nil {
		b, err := json.Marshal(t.Classification)
		if err != nil {
			return turnDoc{}, err
		}
		doc.Classification = string(b)
	}
	return doc, nil
}

func fromTurnDoc(id string, doc turnDoc) (domain.Turn, error) {
	tier, err := domain.ParseCrisisTier(doc.CrisisTier)
	if err != nil {
		return domain.Turn{}, err
	}
	t := domain.Turn{
		ID:         domain.TurnID(id),
		Speaker:    domain.Speaker(doc.Speaker),
		Text:       doc.Text,
		Timestamp:  doc.CreatedAt,
		CrisisTier: tier,
	}
	if doc.Classification != "" {
		var c domain.ClassificationResult
		if err := json.Unmarshal([]byte(doc.Classification), &c); err != nil {
			return domain.Turn{}, err
		}
		t.Classification = &c
	}
	return t, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	checkIn, err := encode(session.CheckIn)
	if err != nil {
		return fmt.Errorf("firestore CreateSession encode: %w", err)
	}
	convCtx, err := encode(session.Context)
	if err != nil {
		return fmt.Errorf("firestore CreateSession encode: %w", err)
	}

	doc := sessionDoc{
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		CheckIn:   checkIn,
		Context:   convCtx,
		TurnCount: len(session.Turns),
	}

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(s.sessionDoc(session.ID), doc); err != nil {
			return err
		}
		return s.writeTurns(tx, session.ID, session.Turns, 0)
	})
	if status.Code(err) == codes.AlreadyExists {
		return domain.ErrSessionExists
	}
	if err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

// UpdateSession writes everything but the context. Turns are append-only, so only the
// ones past the stored count are written.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	checkIn, err := encode(session.CheckIn)
	if err != nil {
		return fmt.Errorf("firestore UpdateSession encode: %w", err)
	}

	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := s.sessionDoc(session.ID)
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var stored sessionDoc
		if err := snap.DataTo(&stored); err != nil {
			return err
		}

		if err := s.writeTurns(tx, session.ID, session.Turns, stored.TurnCount); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "updated_at", Value: session.UpdatedAt},
			{Path: "checkin", Value: checkIn},
			{Path: "turn_count", Value: len(session.Turns)},
		})
	})
	if isNotFound(err) {
		return domain.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateContext(ctx context.Context, id domain.SessionID, convCtx domain.ConversationContext) error {
	encoded, err := encode(convCtx)
	if err != nil {
		return fmt.Errorf("firestore UpdateContext encode: %w", err)
	}

	_, err = s.sessionDoc(id).Update(ctx, []firestore.Update{
		{Path: "context", Value: encoded},
	})
	if isNotFound(err) {
		return domain.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore UpdateContext: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}

	session := &domain.Session{
		ID:        id,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(doc.CheckIn), &session.CheckIn); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode checkin: %w", err)
	}
	if err := json.Unmarshal([]byte(doc.Context), &session.Context); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode context: %w", err)
	}

	turns, err := s.getTurns(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Turns = turns
	return session, nil
}

func (s *Store) writeTurns(tx *firestore.Transaction, id domain.SessionID, turns []domain.Turn, from int) error {
	for i := from; i < len(turns); i++ {
		doc, err := toTurnDoc(i, turns[i])
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		if err := tx.Set(s.turnDoc(id, turns[i].ID), doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) getTurns(ctx context.Context, id domain.SessionID) ([]domain.Turn, error) {
	iter := s.turnsCol(id).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []domain.Turn
	for {
		snap, err := iter.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("firestore getTurns: %w", err)
		}

		var doc turnDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode turnDoc: %w", err)
		}
		turn, err := fromTurnDoc(snap.Ref.ID, doc)
		if err != nil {
			return nil, fmt.Errorf("decode turnDoc: %w", err)
		}
		out = append(out, turn)
	}
	return out, nil
}
