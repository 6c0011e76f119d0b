package checkin

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/farum-triage/internal/app/crisis"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

// Pattern is one row of the summary decision table.
type Pattern struct {
	Name      string
	Match     func(a crisis.Answers) bool
	Paragraph string
}

// Patterns is evaluated in order; the first match is used, else BalancedState.
var Patterns = []Pattern{
	{
		Name: "burnout",
		Match: func(a crisis.Answers) bool {
			return a.Stress >= 7 && a.Energy <= 3
		},
		Paragraph: "High stress with very little energy left is a common sign of burnout. " +
			"Your body may be asking for rest more than for pushing through. " +
			"Even small breaks, a decent night's sleep and saying no to one extra task can make a difference.",
	},
	{
		Name: "overwhelmed",
		Match: func(a crisis.Answers) bool {
			return a.Stress >= 7 && a.Focus == domain.FocusPoor
		},
		Paragraph: "When stress is high it's really hard to concentrate, so it makes sense your mind feels scattered. " +
			"Try picking just one small thing to focus on at a time and writing the rest down so it stops circling.",
	},
	{
		Name: "low mood with withdrawal",
		Match: func(a crisis.Answers) bool {
			return a.Mood == domain.MoodNegative && a.Social == domain.SocialWithdrawn
		},
		Paragraph: "Feeling low and pulling away from people often feed each other. " +
			"Reaching out to even one person you trust, with a short message, can help break that cycle.",
	},
	{
		Name: "running on empty",
		Match: func(a crisis.Answers) bool {
			return a.Energy <= 3
		},
		Paragraph: "Your energy is running low. Be gentle with yourself today. " +
			"Rest, water, food and a bit of daylight are not small things when you're depleted.",
	},
	{
		Name: "stress building",
		Match: func(a crisis.Answers) bool {
			return a.Stress >= 6
		},
		Paragraph: "Your stress seems to be building up. It could help to notice what's adding to it " +
			"and to plan a few minutes each day just for yourself, like a walk or some slow breathing.",
	},
	{
		Name: "balanced/positive",
		Match: func(a crisis.Answers) bool {
			return a.Mood == domain.MoodPositive && a.Stress <= 4 && a.Energy >= 6
		},
		Paragraph: "You seem to be in a good, balanced place right now. " +
			"It's worth noticing what's been helping, so you can come back to it on harder days.",
	},
}

// BalancedState is used when no pattern matches.
var BalancedState = Pattern{
	Name: "balanced state",
	Paragraph: "Overall things look fairly balanced, with some ups and downs like everyone has. " +
		"Keep checking in with yourself and notice what lifts you up.",
}

// SelectPattern returns the first matching pattern for complete answers.
func SelectPattern(answers domain.CheckInAnswers) Pattern {
	if !answers.Complete() {
		return BalancedState
	}
	a := crisis.Answers{
		Mood:   *answers.Mood,
		Stress: *answers.Stress,
		Energy: *answers.Energy,
		Focus:  *answers.Focus,
		Social: *answers.Social,
	}
	for _, p := range Patterns {
		if p.Match(a) {
			return p
		}
	}
	return BalancedState
}

var (
	moodNarrative = map[domain.Mood]string{
		domain.MoodPositive: "your mood has been positive",
		domain.MoodNegative: "your mood has been low",
		domain.MoodNeutral:  "your mood has been somewhere in the middle",
	}
	focusNarrative = map[domain.Focus]string{
		domain.FocusGood:     "you've been able to focus well",
		domain.FocusModerate: "your focus has been okay",
		domain.FocusPoor:     "concentrating has been hard",
	}
	socialNarrative = map[domain.Social]string{
		domain.SocialSocial:    "you've been staying connected with people",
		domain.SocialNeutral:   "your social life has been about as usual",
		domain.SocialWithdrawn: "you've been keeping more to yourself",
	}
)

// Summarize builds the wellness summary: a per-field narrative and one pattern paragraph.
func Summarize(answers domain.CheckInAnswers) string {
	var b strings.Builder
	b.WriteString("Thank you for checking in. Here's what I heard:\n")
	if answers.Mood != nil {
		fmt.Fprintf(&b, "• Mood: %s.\n", moodNarrative[*answers.Mood])
	}
	if answers.Stress != nil {
		fmt.Fprintf(&b, "• Stress: %d/10.\n", *answers.Stress)
	}
	if answers.Energy != nil {
		fmt.Fprintf(&b, "• Energy: %d/10.\n", *answers.Energy)
	}
	if answers.Focus != nil {
		fmt.Fprintf(&b, "• Focus: %s.\n", focusNarrative[*answers.Focus])
	}
	if answers.Social != nil {
		fmt.Fprintf(&b, "• Connection: %s.\n", socialNarrative[*answers.Social])
	}
	b.WriteString("\n")
	b.WriteString(SelectPattern(answers).Paragraph)
	return b.String()
}
