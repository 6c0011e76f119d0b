package continuity

import (
	"context"
	"sync"
	"time"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

// DefaultHistorySize bounds ConversationContext.SessionHistory.
const DefaultHistorySize = 3

// UpdateContext returns convCtx advanced by one message. Topic, situation and focus are
// only replaced when the analysis found one, so a short aside does not erase the thread;
// the emotional state always follows the latest message. The input is not modified.
func UpdateContext(convCtx domain.ConversationContext, analysis domain.ContinuityAnalysis, message string, at time.Time, historySize int) domain.ConversationContext {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}

	next := convCtx
	if analysis.Topic != "" {
		next.MainTopic = analysis.Topic
	}
	if analysis.Situation != "" {
		next.OngoingSituation = analysis.Situation
	}
	if analysis.TherapeuticFocus != "" {
		next.LastTherapeuticFocus = analysis.TherapeuticFocus
	}
	next.EmotionalState = string(analysis.Emotion)

	next.KeyDetails = make(map[string]string, len(convCtx.KeyDetails)+len(analysis.KeyDetails))
	for k, v := range convCtx.KeyDetails {
		next.KeyDetails[k] = v
	}
	for k, v := range analysis.KeyDetails {
		next.KeyDetails[k] = v
	}
	if len(next.KeyDetails) == 0 {
		next.KeyDetails = nil
	}

	history := append([]domain.HistoryEntry(nil), convCtx.SessionHistory...)
	history = append(history, domain.HistoryEntry{
		Message:   message,
		Analysis:  analysis,
		Timestamp: at,
	})
	if len(history) > historySize {
		history = history[len(history)-historySize:]
	}
	next.SessionHistory = history

	return next
}

const defaultWriteTimeout = 5 * time.Second

// Updater applies context updates off the reply path. Updates for one session run in
// the order they were scheduled; Wait lets the next message of that session see them.
type Updater struct {
	writer      domain.ContextWriter
	historySize int
	timeout     time.Duration
	now         func() time.Time

	mu      sync.Mutex
	pending map[domain.SessionID]chan struct{}
	latest  map[domain.SessionID]domain.ConversationContext // last result while a chain is in flight
	wg      sync.WaitGroup
}

func NewUpdater(writer domain.ContextWriter, historySize int) *Updater {
	return &Updater{
		writer:      writer,
		historySize: historySize,
		timeout:     defaultWriteTimeout,
		now:         time.Now,
		pending:     make(map[domain.SessionID]chan struct{}),
		latest:      make(map[domain.SessionID]domain.ConversationContext),
	}
}

// Schedule analyses message and persists the updated context in the background.
// It returns immediately. convCtx is only used when no earlier update of the session is
// still in flight; otherwise the update builds on the result of the previous one.
func (u *Updater) Schedule(sessionID domain.SessionID, convCtx domain.ConversationContext, message string) {
	at := u.now()
	done := make(chan struct{})

	u.mu.Lock()
	prev := u.pending[sessionID]
	u.pending[sessionID] = done
	u.mu.Unlock()

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		defer u.finish(sessionID, done)

		base := convCtx
		if prev != nil {
			<-prev
			u.mu.Lock()
			if c, ok := u.latest[sessionID]; ok {
				base = c
			}
			u.mu.Unlock()
		}

		next := UpdateContext(base, Analyze(message), message, at, u.historySize)

		u.mu.Lock()
		u.latest[sessionID] = next
		u.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
		defer cancel()
		if err := u.writer.UpdateContext(ctx, sessionID, next); err != nil {
			observability.WithFields("session_id", sessionID).Warnw("context update failed", "error", err)
		}
	}()
}

func (u *Updater) finish(sessionID domain.SessionID, done chan struct{}) {
	close(done)
	u.mu.Lock()
	if u.pending[sessionID] == done {
		delete(u.pending, sessionID)
		delete(u.latest, sessionID)
	}
	u.mu.Unlock()
}

// Wait blocks until every update scheduled for the session has been applied, or ctx ends.
func (u *Updater) Wait(ctx context.Context, sessionID domain.SessionID) error {
	u.mu.Lock()
	done := u.pending[sessionID]
	u.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close waits for all in-flight updates.
func (u *Updater) Close() {
	u.wg.Wait()
}
