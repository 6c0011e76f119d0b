package badgerstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-triage/internal/adapters/storage/badgerstore"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

func newStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	store, err := badgerstore.NewInMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newSession(id domain.SessionID) *domain.Session {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	stress := 7
	return &domain.Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		CheckIn: domain.CheckInState{
			Step:    domain.StepEnergy,
			Answers: domain.CheckInAnswers{Stress: &stress},
		},
		Turns: []domain.Turn{
			{ID: "t1", Speaker: domain.SpeakerUser, Text: "hi", Timestamp: now, CrisisTier: domain.TierModerate},
		},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.CreateSession(ctx, newSession("s1")))
	assert.ErrorIs(t, store.CreateSession(ctx, newSession("s1")), domain.ErrSessionExists)

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(newSession("s1").CreatedAt))
	require.Len(t, got.Turns, 1)
	assert.Equal(t, domain.TierModerate, got.Turns[0].CrisisTier)
	require.NotNil(t, got.CheckIn.Answers.Stress)
	assert.Equal(t, 7, *got.CheckIn.Answers.Stress)

	_, err = store.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_UpdateSessionKeepsContext(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.CreateSession(ctx, newSession("s1")))

	require.NoError(t, store.UpdateContext(ctx, "s1", domain.ConversationContext{
		MainTopic:  "grief",
		KeyDetails: map[string]string{"person": "mom"},
	}))

	stale := newSession("s1")
	stale.Turns = append(stale.Turns, domain.Turn{ID: "t2", Speaker: domain.SpeakerSystem, Text: "hello"})
	require.NoError(t, store.UpdateSession(ctx, stale))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.Turns, 2)
	assert.Equal(t, "grief", got.Context.MainTopic)
	assert.Equal(t, "mom", got.Context.KeyDetails["person"])
}

func TestStore_MissingSession(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	assert.ErrorIs(t, store.UpdateSession(ctx, newSession("missing")), domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.UpdateContext(ctx, "missing", domain.ConversationContext{}), domain.ErrSessionNotFound)
}
