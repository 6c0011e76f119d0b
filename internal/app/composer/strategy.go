package composer

import (
	"context"
	"time"

	"github.com/PabloGalante/farum-triage/internal/app/checkin"
	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

// Input is everything a strategy may look at for one message.
type Input struct {
	SessionID      domain.SessionID
	Message        string
	Classification domain.ClassificationResult
	// Crisis is assessed fresh on this message.
	Crisis     domain.CrisisResult
	Continuity domain.ContinuitySnapshot
	Context    domain.ConversationContext
	// CheckIn is updated in place by the check-in and crisis strategies.
	CheckIn *domain.CheckInState
	History []domain.Turn
}

// Reply is what a strategy produced.
type Reply struct {
	Text string
	// Crisis replaces Input.Crisis when set (check-in completion).
	Crisis *domain.CrisisResult
}

// Strategy is one link of the response chain.
type Strategy interface {
	Name() domain.Strategy
	Applies(in *Input) bool
	Respond(ctx context.Context, in *Input) (Reply, error)
}

type checkInStrategy struct {
	controller *checkin.Controller
}

func (s *checkInStrategy) Name() domain.Strategy { return domain.StrategyCheckIn }

// Applies while an interview is running, unless the message itself is high risk.
func (s *checkInStrategy) Applies(in *Input) bool {
	return in.CheckIn != nil && in.CheckIn.Active() && in.Crisis.Tier < domain.TierHigh
}

func (s *checkInStrategy) Respond(ctx context.Context, in *Input) (Reply, error) {
	out, err := s.controller.Advance(ctx, in.CheckIn, in.Message)
	if err != nil {
		return Reply{}, err
	}
	reply := Reply{Text: out.Text}
	if out.Completed && out.Crisis.Tier > in.Crisis.Tier {
		reply.Crisis = &out.Crisis
	}
	return reply, nil
}

type crisisStrategy struct{}

func (crisisStrategy) Name() domain.Strategy { return domain.StrategyCrisis }

func (crisisStrategy) Applies(in *Input) bool {
	return in.Crisis.Tier != domain.TierNone
}

func (crisisStrategy) Respond(ctx context.Context, in *Input) (Reply, error) {
	if in.CheckIn != nil && in.CheckIn.Active() {
		observability.LoggerFromContext(ctx).Infow("check-in interrupted by crisis",
			"session_id", in.SessionID,
			"step", in.CheckIn.Step,
		)
		checkin.Cancel(in.CheckIn)
	}
	return Reply{Text: in.Crisis.Message}, nil
}

type continuationStrategy struct {
	picker Picker
}

func (s *continuationStrategy) Name() domain.Strategy { return domain.StrategyContinuation }

func (s *continuationStrategy) Applies(in *Input) bool {
	return in.Continuity.IsContinuation
}

func (s *continuationStrategy) Respond(_ context.Context, in *Input) (Reply, error) {
	aspect := in.Continuity.RelationshipToLastMessage.NewAspect
	variants := continuationVariants(in.Context.OngoingSituation, aspect)
	return Reply{Text: fill(pick(s.picker, variants), in.Classification.Emotion, in.Context)}, nil
}

type intentStrategy struct {
	picker     Picker
	generator  *generation
	moods      domain.MoodHistory
	moodsLimit time.Duration
}

func (s *intentStrategy) Name() domain.Strategy { return domain.StrategyIntent }

func (s *intentStrategy) Applies(in *Input) bool {
	_, ok := intentTemplates[in.Classification.Intent]
	return ok
}

func (s *intentStrategy) Respond(ctx context.Context, in *Input) (Reply, error) {
	if in.Classification.Intent == domain.IntentGreeting {
		if text, ok := s.personalGreeting(ctx, in); ok {
			return Reply{Text: text}, nil
		}
	}

	template := fill(pick(s.picker, intentTemplates[in.Classification.Intent]), in.Classification.Emotion, in.Context)
	return Reply{Text: s.generator.reply(ctx, in, template)}, nil
}

// personalGreeting greets returning users with their last logged mood. Best effort.
func (s *intentStrategy) personalGreeting(ctx context.Context, in *Input) (string, bool) {
	if s.moods == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, s.moodsLimit)
	defer cancel()

	entries, err := s.moods.RecentMoods(ctx, in.SessionID, 1)
	if err != nil {
		observability.LoggerFromContext(ctx).Debugw("mood history unavailable", "error", err)
		return "", false
	}
	if len(entries) == 0 {
		return "", false
	}
	last := entries[len(entries)-1].EmotionLabel
	if last == "" || last == domain.EmotionNeutral {
		return "", false
	}
	return fill(pick(s.picker, greetingWithHistory), last, in.Context), true
}

type fallbackStrategy struct {
	picker    Picker
	generator *generation
}

func (s *fallbackStrategy) Name() domain.Strategy { return domain.StrategyFallback }

func (s *fallbackStrategy) Applies(*Input) bool { return true }

func (s *fallbackStrategy) Respond(ctx context.Context, in *Input) (Reply, error) {
	template := pick(s.picker, fallbackTemplates)
	return Reply{Text: s.generator.reply(ctx, in, template)}, nil
}
