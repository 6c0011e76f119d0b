// Package checkin runs the five-question wellness interview.
package checkin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/app/crisis"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

// Assessor is the part of the crisis policy the controller needs at completion.
type Assessor interface {
	Assess(ctx context.Context, message string, answers *domain.CheckInAnswers) domain.CrisisResult
}

// Outcome is the result of one Advance call.
type Outcome struct {
	// Text is the next question, or the summary once Completed.
	Text      string
	Completed bool
	// Crisis is only set on completion.
	Crisis domain.CrisisResult
}

// Controller drives CheckInState. It keeps no state of its own.
type Controller struct {
	assessor Assessor
	now      func() time.Time
}

func NewController(assessor Assessor) *Controller {
	return &Controller{
		assessor: assessor,
		now:      time.Now,
	}
}

// Start replaces state with a fresh interview at the first step and returns its question.
func (c *Controller) Start(state *domain.CheckInState) string {
	now := c.now()
	*state = domain.CheckInState{
		Step:      domain.StepMood,
		StartedAt: &now,
	}
	q, _ := Question(domain.StepMood)
	return q
}

// Cancel ends any running interview.
func Cancel(state *domain.CheckInState) {
	*state = domain.CheckInState{}
}

// Advance records the answer for the current step. Before the last step it moves to the
// next question; on the last step it completes the interview, assesses the answers and
// returns the summary, which is the crisis message when the tier is high or above.
func (c *Controller) Advance(ctx context.Context, state *domain.CheckInState, raw string) (Outcome, error) {
	if state.Step < domain.StepInactive || state.Step > domain.StepSocial {
		return Outcome{}, fmt.Errorf("advance at step %d: %w", state.Step, domain.ErrInvalidCheckInStep)
	}
	if !state.Active() {
		return Outcome{}, domain.ErrCheckInNotActive
	}

	record(state, raw)
	state.RawAnswers = append(state.RawAnswers, raw)

	if state.Step < domain.StepSocial {
		state.Step++
		q, err := Question(state.Step)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Text: q}, nil
	}

	state.Completed = true
	answers := state.Answers
	res := c.assessor.Assess(ctx, strings.Join(state.RawAnswers, " "), &answers)

	return Outcome{
		Text:      summaryFor(answers, res),
		Completed: true,
		Crisis:    res,
	}, nil
}

func record(state *domain.CheckInState, raw string) {
	switch state.Step {
	case domain.StepMood:
		mood := classifier.ExtractMood(raw)
		state.Answers.Mood = &mood
	case domain.StepStress:
		stress := classifier.ExtractScale(raw, classifier.StressBuckets)
		state.Answers.Stress = &stress
	case domain.StepEnergy:
		energy := classifier.ExtractScale(raw, classifier.EnergyBuckets)
		state.Answers.Energy = &energy
	case domain.StepFocus:
		focus := classifier.ExtractFocus(raw)
		state.Answers.Focus = &focus
	case domain.StepSocial:
		social := classifier.ExtractSocial(raw)
		state.Answers.Social = &social
	}
}

func summaryFor(answers domain.CheckInAnswers, res domain.CrisisResult) string {
	switch {
	case res.Tier >= domain.TierHigh:
		return res.Message
	case res.Tier == domain.TierModerate && len(res.Resources) > 0:
		top := res.Resources[0]
		return Summarize(answers) + fmt.Sprintf(
			"\n\nIf things start to feel like too much, %s is there for you at %s.", top.Name, contact(top))
	default:
		return Summarize(answers)
	}
}

func contact(r domain.CrisisResource) string {
	if r.Phone != "" {
		return r.Phone
	}
	return r.Description
}

// Progress is the client view of the interview state.
func Progress(state domain.CheckInState) *domain.CheckInProgress {
	if state.Step == domain.StepInactive {
		return nil
	}
	return &domain.CheckInProgress{
		Step:      state.Step,
		StepName:  domain.CheckInStepNames[state.Step],
		Completed: state.Completed,
	}
}

var _ Assessor = (*crisis.Policy)(nil)
