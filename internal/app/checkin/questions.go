package checkin

import (
	"fmt"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

var questions = map[int]string{
	domain.StepMood: "Let's do a quick check-in. First, how would you describe your mood today? " +
		"Good, bad, somewhere in between?",
	domain.StepStress: "Thanks for sharing. On a scale of 1 to 10, how stressed have you been feeling lately?",
	domain.StepEnergy: "And your energy? On a scale of 1 to 10, where 1 is running on empty and 10 is fully charged.",
	domain.StepFocus:  "How has your focus been? Are you able to concentrate, or is your mind all over the place?",
	domain.StepSocial: "Last one. How connected have you felt to other people lately? " +
		"Have you been seeing friends, or keeping to yourself?",
}

// Question returns the prompt for a step.
func Question(step int) (string, error) {
	q, ok := questions[step]
	if !ok {
		return "", fmt.Errorf("question for step %d: %w", step, domain.ErrInvalidCheckInStep)
	}
	return q, nil
}
