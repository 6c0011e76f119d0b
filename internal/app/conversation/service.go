// Package conversation is the entry point of the triage engine: one inbound message in,
// one EngineResponse out, with the session persisted in between.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/PabloGalante/farum-triage/internal/app/checkin"
	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/app/composer"
	"github.com/PabloGalante/farum-triage/internal/app/continuity"
	"github.com/PabloGalante/farum-triage/internal/app/crisis"
	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

const (
	defaultMaxMessageLength = 500
	promptHistoryTurns      = 6
	waitTimeout             = 2 * time.Second
	notifyTimeout           = 5 * time.Second
)

// Options wires the optional collaborators and engine limits. Zero values are fine.
type Options struct {
	Generator domain.Generator
	Resources domain.ResourceLocator
	Moods     domain.MoodHistory
	Notifier  domain.CrisisNotifier
	Picker    composer.Picker

	MaxMessageLength  int
	HistorySize       int
	GenerationTimeout time.Duration
	ResourceTimeout   time.Duration
}

type Service struct {
	store    domain.SessionStore
	policy   *crisis.Policy
	checkins *checkin.Controller
	composer *composer.Composer
	updater  *continuity.Updater
	notifier domain.CrisisNotifier
	moods    domain.MoodRecorder

	now              func() time.Time
	maxMessageLength int

	locks    keyedMutex
	notifyWG sync.WaitGroup
}

func NewService(store domain.SessionStore, opts Options) *Service {
	if opts.MaxMessageLength <= 0 {
		opts.MaxMessageLength = defaultMaxMessageLength
	}
	if opts.Picker == nil {
		opts.Picker = composer.NewPicker(0)
	}

	policy := crisis.NewPolicy(opts.Resources, opts.ResourceTimeout)
	checkins := checkin.NewController(policy)
	updater := continuity.NewUpdater(store, opts.HistorySize)

	composerOpts := []composer.Option{
		composer.WithPicker(opts.Picker),
	}
	if opts.Generator != nil {
		composerOpts = append(composerOpts, composer.WithGenerator(opts.Generator, opts.GenerationTimeout))
	}
	if opts.Moods != nil {
		composerOpts = append(composerOpts, composer.WithMoodHistory(opts.Moods))
	}

	moods, _ := opts.Moods.(domain.MoodRecorder)

	return &Service{
		store:            store,
		policy:           policy,
		checkins:         checkins,
		composer:         composer.New(checkins, composerOpts...),
		updater:          updater,
		notifier:         opts.Notifier,
		moods:            moods,
		now:              time.Now,
		maxMessageLength: opts.MaxMessageLength,
		locks:            keyedMutex{locks: make(map[domain.SessionID]*refMutex)},
	}
}

// CreateSession starts an empty session with a fresh id.
func (s *Service) CreateSession(ctx context.Context) (*domain.Session, error) {
	session := s.newSession(domain.SessionID(uuid.NewString()))

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)
	if err := s.store.CreateSession(ctx, session); err != nil {
		log.Errorw("failed to create session", "error", err)
		return nil, err
	}
	log.Infow("session created")
	return session, nil
}

// GetSession returns the session once any pending context update has been applied.
func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	s.waitForContext(ctx, id)
	return s.store.GetSession(ctx, id)
}

// ProcessMessage answers one message. The session is created on its first message and
// the text is cut to the configured maximum length. Classification, resource and
// generation failures never surface here; only storage errors and an empty message do.
func (s *Service) ProcessMessage(ctx context.Context, id domain.SessionID, text string) (*domain.EngineResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	text = truncate(text, s.maxMessageLength)

	if id == "" {
		id = domain.SessionID(uuid.NewString())
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	log := observability.LoggerFromContext(ctx).With("session_id", id)

	s.waitForContext(ctx, id)
	session, err := s.loadOrCreate(ctx, id)
	if err != nil {
		log.Errorw("failed to load session", "error", err)
		return nil, err
	}

	classification := classifier.Classify(text)
	assessment := s.policy.Assess(ctx, text, nil)
	userTurn := domain.Turn{
		ID:             domain.TurnID(uuid.NewString()),
		Speaker:        domain.SpeakerUser,
		Text:           text,
		Timestamp:      s.now(),
		Classification: &classification,
		CrisisTier:     assessment.Tier,
	}

	resp, err := s.composer.Compose(ctx, composer.Input{
		SessionID:      id,
		Message:        text,
		Classification: classification,
		Crisis:         assessment,
		Continuity:     continuity.AnalyzeContinuity(text, session.Context),
		Context:        session.Context,
		CheckIn:        &session.CheckIn,
		History:        lastTurns(session.Turns, promptHistoryTurns),
	})
	if err != nil {
		log.Errorw("compose failed", "error", err)
		return nil, err
	}

	now := s.now()
	session.Turns = append(session.Turns, userTurn, domain.Turn{
		ID:         domain.TurnID(uuid.NewString()),
		Speaker:    domain.SpeakerSystem,
		Text:       resp.ReplyText,
		Timestamp:  now,
		CrisisTier: resp.CrisisTier,
	})
	session.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, session); err != nil {
		log.Errorw("failed to update session", "error", err)
		return nil, err
	}

	// check-in answers do not move the therapeutic thread
	if resp.Strategy != domain.StrategyCheckIn {
		s.updater.Schedule(id, session.Context, text)
		s.recordMood(ctx, id, classification.Emotion, now)
	}

	if resp.CrisisTier >= domain.TierHigh {
		source, keywords := assessment.Source, assessment.TriggeredKeywords
		if resp.Strategy == domain.StrategyCheckIn {
			source, keywords = domain.CrisisSourceCheckIn, nil
		}
		s.notify(domain.CrisisEvent{
			SessionID:         id,
			Tier:              resp.CrisisTier,
			Source:            source,
			TriggeredKeywords: keywords,
			At:                now,
		})
	}

	log.Infow("message processed",
		"strategy", resp.Strategy,
		"emotion", resp.Emotion,
		"tier", resp.CrisisTier.String(),
	)
	return &resp, nil
}

// StartCheckIn (re)starts the wellness interview and returns its first question.
// A running interview is replaced.
func (s *Service) StartCheckIn(ctx context.Context, id domain.SessionID) (*domain.EngineResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	log := observability.LoggerFromContext(ctx).With("session_id", id)

	s.waitForContext(ctx, id)
	session, err := s.loadOrCreate(ctx, id)
	if err != nil {
		log.Errorw("failed to load session", "error", err)
		return nil, err
	}

	question := s.checkins.Start(&session.CheckIn)
	now := s.now()
	session.Turns = append(session.Turns, domain.Turn{
		ID:        domain.TurnID(uuid.NewString()),
		Speaker:   domain.SpeakerSystem,
		Text:      question,
		Timestamp: now,
	})
	session.UpdatedAt = now

	if err := s.store.UpdateSession(ctx, session); err != nil {
		log.Errorw("failed to update session", "error", err)
		return nil, err
	}

	log.Infow("check-in started")
	return &domain.EngineResponse{
		ReplyText:  question,
		Emotion:    domain.EmotionNeutral,
		CrisisTier: domain.TierNone,
		Strategy:   domain.StrategyCheckIn,
		CheckIn:    checkin.Progress(session.CheckIn),
	}, nil
}

// Close waits for background context updates and notifications.
func (s *Service) Close() {
	s.updater.Close()
	s.notifyWG.Wait()
}

// recordMood logs non-neutral emotions when the mood history is writable. Best effort.
func (s *Service) recordMood(ctx context.Context, id domain.SessionID, emotion domain.Emotion, at time.Time) {
	if s.moods == nil || emotion == "" || emotion == domain.EmotionNeutral {
		return
	}
	err := s.moods.AppendMood(ctx, id, domain.MoodEntry{EmotionLabel: emotion, Timestamp: at})
	if err != nil {
		observability.LoggerFromContext(ctx).Warnw("failed to record mood", "session_id", id, "error", err)
	}
}

func (s *Service) newSession(id domain.SessionID) *domain.Session {
	now := s.now()
	return &domain.Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) loadOrCreate(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, id)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	session = s.newSession(id)
	if err := s.store.CreateSession(ctx, session); err != nil {
		if errors.Is(err, domain.ErrSessionExists) {
			return s.store.GetSession(ctx, id)
		}
		return nil, err
	}
	observability.LoggerFromContext(ctx).Infow("session created on first message", "session_id", id)
	return session, nil
}

func (s *Service) waitForContext(ctx context.Context, id domain.SessionID) {
	wctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	if err := s.updater.Wait(wctx, id); err != nil {
		observability.LoggerFromContext(ctx).Warnw("context update still pending", "session_id", id, "error", err)
	}
}

func (s *Service) notify(event domain.CrisisEvent) {
	if s.notifier == nil {
		return
	}
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyCrisis(ctx, event); err != nil {
			observability.WithFields("session_id", event.SessionID, "tier", event.Tier.String()).
				Warnw("crisis notification failed", "error", err)
		}
	}()
}

func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max])
}

func lastTurns(turns []domain.Turn, n int) []domain.Turn {
	if len(turns) <= n {
		return append([]domain.Turn(nil), turns...)
	}
	return append([]domain.Turn(nil), turns[len(turns)-n:]...)
}
