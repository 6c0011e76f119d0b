// Package composer picks exactly one response strategy per message and builds the reply.
package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/farum-triage/internal/app/checkin"
	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

const (
	defaultGenerationTimeout = 10 * time.Second
	defaultMoodTimeout       = 2 * time.Second
)

type options struct {
	generator         domain.Generator
	generationTimeout time.Duration
	moods             domain.MoodHistory
	picker            Picker
}

// Option configures a Composer.
type Option func(*options)

// WithGenerator enables the generative backend for intent and fallback replies.
func WithGenerator(g domain.Generator, timeout time.Duration) Option {
	return func(o *options) {
		o.generator = g
		if timeout > 0 {
			o.generationTimeout = timeout
		}
	}
}

// WithMoodHistory enables personalised greetings.
func WithMoodHistory(m domain.MoodHistory) Option {
	return func(o *options) { o.moods = m }
}

// WithPicker sets the template picker.
func WithPicker(p Picker) Option {
	return func(o *options) { o.picker = p }
}

// Composer runs the strategy chain: the first strategy that applies answers.
type Composer struct {
	strategies []Strategy
}

// New builds the default chain: checkin, crisis, continuation, intent, fallback.
func New(controller *checkin.Controller, opts ...Option) *Composer {
	o := options{
		generationTimeout: defaultGenerationTimeout,
		picker:            NewPicker(0),
	}
	for _, opt := range opts {
		opt(&o)
	}

	gen := &generation{backend: o.generator, timeout: o.generationTimeout}
	return &Composer{
		strategies: []Strategy{
			&checkInStrategy{controller: controller},
			crisisStrategy{},
			&continuationStrategy{picker: o.picker},
			&intentStrategy{picker: o.picker, generator: gen, moods: o.moods, moodsLimit: defaultMoodTimeout},
			&fallbackStrategy{picker: o.picker, generator: gen},
		},
	}
}

// Compose answers one message. Only an invalid check-in state is returned as an error;
// every other failure degrades to a template reply.
func (c *Composer) Compose(ctx context.Context, in Input) (domain.EngineResponse, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", in.SessionID)

	strategy := c.selectStrategy(&in)
	if strategy == nil {
		return domain.EngineResponse{}, fmt.Errorf("no response strategy applies")
	}

	reply, err := strategy.Respond(ctx, &in)
	if err != nil {
		log.Errorw("strategy failed", "strategy", strategy.Name(), "error", err)
		return domain.EngineResponse{}, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
	}

	crisis := in.Crisis
	if reply.Crisis != nil {
		crisis = *reply.Crisis
	}

	checkInMode := strategy.Name() == domain.StrategyCheckIn
	emotion := in.Classification.Emotion

	resp := domain.EngineResponse{
		ReplyText:  reply.Text,
		Emotion:    emotion,
		CrisisTier: crisis.Tier,
		Strategy:   strategy.Name(),
		Resources:  crisis.Resources,
	}
	if ShowAuxiliaryAction(emotion, crisis.Tier, checkInMode) {
		resp.ShowAuxiliaryAction = true
		resp.AuxiliaryPayload = &domain.AuxiliaryPayload{
			Kind:       "music",
			Emotion:    emotion,
			Suggestion: classifier.MusicSuggestion(emotion),
		}
	}
	if checkInMode && in.CheckIn != nil {
		resp.CheckIn = checkin.Progress(*in.CheckIn)
	}

	log.Debugw("reply composed",
		"strategy", resp.Strategy,
		"emotion", resp.Emotion,
		"tier", resp.CrisisTier.String(),
	)
	return resp, nil
}

func (c *Composer) selectStrategy(in *Input) Strategy {
	for _, s := range c.strategies {
		if s.Applies(in) {
			return s
		}
	}
	return nil
}

// ShowAuxiliaryAction reports whether the reply should offer the music action.
func ShowAuxiliaryAction(emotion domain.Emotion, tier domain.CrisisTier, checkInMode bool) bool {
	return domain.AuxiliaryEmotions[emotion] && tier == domain.TierNone && !checkInMode
}
