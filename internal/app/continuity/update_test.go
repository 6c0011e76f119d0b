package continuity_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/PabloGalante/farum-triage/internal/app/continuity"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

func TestUpdateContext(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	start := domain.ConversationContext{}

	first := continuity.Analyze("My girlfriend broke up with me")
	got := continuity.UpdateContext(start, first, "My girlfriend broke up with me", at, 3)

	want := domain.ConversationContext{
		MainTopic:            "relationship_loss",
		KeyDetails:           map[string]string{"person": "girlfriend"},
		LastTherapeuticFocus: "processing the end of the relationship",
		OngoingSituation:     "breakup",
		EmotionalState:       "sad",
		SessionHistory: []domain.HistoryEntry{
			{Message: "My girlfriend broke up with me", Analysis: first, Timestamp: at},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, start.SessionHistory)
	assert.Nil(t, start.KeyDetails)
}

func TestUpdateContext_KeepsThreadOnAside(t *testing.T) {
	at := time.Now()
	convCtx := continuity.UpdateContext(domain.ConversationContext{},
		continuity.Analyze("My girlfriend broke up with me"), "My girlfriend broke up with me", at, 3)

	next := continuity.UpdateContext(convCtx, continuity.Analyze("I'm so happy it's sunny"), "I'm so happy it's sunny", at, 3)

	assert.Equal(t, "relationship_loss", next.MainTopic)
	assert.Equal(t, "breakup", next.OngoingSituation)
	assert.Equal(t, "happy", next.EmotionalState)
	assert.Equal(t, "girlfriend", next.KeyDetails["person"])
}

func TestUpdateContext_HistoryIsBounded(t *testing.T) {
	var convCtx domain.ConversationContext
	messages := []string{"one message", "two message", "three message", "four message", "five message"}
	for _, m := range messages {
		convCtx = continuity.UpdateContext(convCtx, continuity.Analyze(m), m, time.Now(), 3)
	}

	require.Len(t, convCtx.SessionHistory, 3)
	assert.Equal(t, "three message", convCtx.SessionHistory[0].Message)
	assert.Equal(t, "five message", convCtx.SessionHistory[2].Message)
}

type recordingWriter struct {
	mu     sync.Mutex
	writes []domain.ConversationContext
	block  chan struct{}
	err    error
}

func (w *recordingWriter) UpdateContext(_ context.Context, _ domain.SessionID, convCtx domain.ConversationContext) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, convCtx)
	return w.err
}

func (w *recordingWriter) last() domain.ConversationContext {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes[len(w.writes)-1]
}

func TestUpdater_ScheduleAndWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &recordingWriter{}
	u := continuity.NewUpdater(w, 3)

	u.Schedule("s1", domain.ConversationContext{}, "My girlfriend broke up with me")
	require.NoError(t, u.Wait(context.Background(), "s1"))

	got := w.last()
	assert.Equal(t, "relationship_loss", got.MainTopic)
	require.Len(t, got.SessionHistory, 1)

	u.Close()
}

func TestUpdater_OrdersUpdatesPerSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &recordingWriter{}
	u := continuity.NewUpdater(w, 3)

	u.Schedule("s1", domain.ConversationContext{}, "first message here")
	u.Schedule("s1", domain.ConversationContext{}, "second message here")
	u.Schedule("s1", domain.ConversationContext{}, "third message here")
	require.NoError(t, u.Wait(context.Background(), "s1"))
	u.Close()

	require.Len(t, w.writes, 3)
	for i, want := range []string{"first message here", "second message here", "third message here"} {
		history := w.writes[i].SessionHistory
		require.Len(t, history, i+1)
		assert.Equal(t, want, history[i].Message)
	}
}

func TestUpdater_ChainedUpdatesKeepEarlierResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &recordingWriter{block: make(chan struct{})}
	u := continuity.NewUpdater(w, 3)

	// every message is scheduled against the same stale snapshot while the store is slow
	u.Schedule("s1", domain.ConversationContext{}, "My girlfriend broke up with me")
	u.Schedule("s1", domain.ConversationContext{}, "second follow up message")
	u.Schedule("s1", domain.ConversationContext{}, "third follow up message")
	close(w.block)
	require.NoError(t, u.Wait(context.Background(), "s1"))
	u.Close()

	got := w.last()
	assert.Equal(t, "relationship_loss", got.MainTopic)
	assert.Equal(t, "girlfriend", got.KeyDetails["person"])
	require.Len(t, got.SessionHistory, 3)
	assert.Equal(t, "third follow up message", got.SessionHistory[2].Message)

	// a fresh chain starts from the snapshot again
	u.Schedule("s1", got, "fourth follow up message")
	require.NoError(t, u.Wait(context.Background(), "s1"))
	u.Close()
	assert.Equal(t, "second follow up message", w.last().SessionHistory[0].Message)
}

func TestUpdater_WaitRespectsContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &recordingWriter{block: make(chan struct{})}
	u := continuity.NewUpdater(w, 3)
	u.Schedule("s1", domain.ConversationContext{}, "something about her")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := u.Wait(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.NoError(t, u.Wait(context.Background(), "other"))

	close(w.block)
	u.Close()
}

func TestUpdater_WriteErrorIsSwallowed(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := &recordingWriter{err: errors.New("store down")}
	u := continuity.NewUpdater(w, 3)

	u.Schedule("s1", domain.ConversationContext{}, "hello there friend")
	assert.NoError(t, u.Wait(context.Background(), "s1"))
	u.Close()
}
