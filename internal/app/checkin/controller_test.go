package checkin_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-triage/internal/app/checkin"
	"github.com/PabloGalante/farum-triage/internal/app/crisis"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

func newController() *checkin.Controller {
	return checkin.NewController(crisis.NewPolicy(nil, time.Second))
}

func runInterview(t *testing.T, c *checkin.Controller, answers []string) (domain.CheckInState, checkin.Outcome) {
	t.Helper()

	var state domain.CheckInState
	first := c.Start(&state)
	require.NotEmpty(t, first)
	require.Equal(t, domain.StepMood, state.Step)

	var out checkin.Outcome
	for i, raw := range answers {
		var err error
		out, err = c.Advance(context.Background(), &state, raw)
		require.NoError(t, err)
		if i < len(answers)-1 {
			require.Equal(t, i+2, state.Step)
			require.False(t, out.Completed)
		}
	}
	return state, out
}

func TestInterview_BalancedPositive(t *testing.T) {
	state, out := runInterview(t, newController(), []string{"great", "2", "8", "great", "social"})

	mood, stress, energy := domain.MoodPositive, 2, 8
	focus, social := domain.FocusGood, domain.SocialSocial
	want := domain.CheckInState{
		Step: domain.StepSocial,
		Answers: domain.CheckInAnswers{
			Mood:   &mood,
			Stress: &stress,
			Energy: &energy,
			Focus:  &focus,
			Social: &social,
		},
		RawAnswers: []string{"great", "2", "8", "great", "social"},
		Completed:  true,
	}
	if diff := cmp.Diff(want, state, cmpopts.IgnoreFields(domain.CheckInState{}, "StartedAt")); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, out.Completed)
	assert.Equal(t, domain.TierNone, out.Crisis.Tier)
	assert.Equal(t, "balanced/positive", checkin.SelectPattern(state.Answers).Name)
	assert.Contains(t, out.Text, "good, balanced place")
	assert.Contains(t, out.Text, "Stress: 2/10")
}

func TestInterview_HighTierSummaryIsCrisisMessage(t *testing.T) {
	_, out := runInterview(t, newController(), []string{"terrible", "10", "exhausted", "can't focus", "alone"})

	assert.Equal(t, domain.TierHigh, out.Crisis.Tier)
	assert.Equal(t, domain.CheckInLevelSevere, out.Crisis.CheckInLevel)
	assert.Equal(t, out.Crisis.Message, out.Text)
	assert.Contains(t, out.Text, "988")
	assert.NotContains(t, out.Text, "Here's what I heard")
}

func TestInterview_SevereAnswersOutrankModeratePhrase(t *testing.T) {
	_, out := runInterview(t, newController(), []string{"bad, I feel trapped", "10", "1", "poor", "alone"})

	assert.Equal(t, domain.TierHigh, out.Crisis.Tier)
	assert.Equal(t, domain.CrisisSourceCheckIn, out.Crisis.Source)
	assert.Equal(t, domain.CheckInLevelSevere, out.Crisis.CheckInLevel)
	assert.Equal(t, out.Crisis.Message, out.Text)
	assert.NotContains(t, out.Text, "Here's what I heard")
}

func TestInterview_ModerateAddsSupportLine(t *testing.T) {
	state, out := runInterview(t, newController(), []string{"okay I guess", "7", "6", "good", "friends"})

	assert.Equal(t, domain.TierModerate, out.Crisis.Tier)
	assert.Equal(t, "stress building", checkin.SelectPattern(state.Answers).Name)
	assert.Contains(t, out.Text, "Here's what I heard")
	assert.Contains(t, out.Text, "988 Suicide & Crisis Lifeline is there for you at 988")
}

func TestInterview_RawAnswersAreScreened(t *testing.T) {
	_, out := runInterview(t, newController(), []string{"honestly hopeless", "3", "7", "good", "friends"})

	assert.Equal(t, domain.TierModerate, out.Crisis.Tier)
	assert.Equal(t, domain.CrisisSourceKeyword, out.Crisis.Source)
	assert.Contains(t, out.Crisis.TriggeredKeywords, "hopeless")
}

func TestInterview_MalformedAnswersStillComplete(t *testing.T) {
	state, out := runInterview(t, newController(), []string{"", "???", "🙂", "-", "..."})

	require.True(t, out.Completed)
	require.True(t, state.Answers.Complete())
	assert.Equal(t, domain.MoodNeutral, *state.Answers.Mood)
	assert.Equal(t, 5, *state.Answers.Stress)
	assert.Equal(t, 5, *state.Answers.Energy)
	assert.Equal(t, domain.FocusModerate, *state.Answers.Focus)
	assert.Equal(t, domain.SocialNeutral, *state.Answers.Social)
}

func TestAdvance_AnswersFilledInLockstep(t *testing.T) {
	c := newController()
	var state domain.CheckInState
	c.Start(&state)

	_, err := c.Advance(context.Background(), &state, "bad")
	require.NoError(t, err)
	assert.NotNil(t, state.Answers.Mood)
	assert.Nil(t, state.Answers.Stress)

	_, err = c.Advance(context.Background(), &state, "8")
	require.NoError(t, err)
	assert.NotNil(t, state.Answers.Stress)
	assert.Nil(t, state.Answers.Energy)
	assert.Equal(t, domain.StepEnergy, state.Step)
}

func TestAdvance_Errors(t *testing.T) {
	c := newController()

	t.Run("inactive", func(t *testing.T) {
		var state domain.CheckInState
		_, err := c.Advance(context.Background(), &state, "good")
		assert.ErrorIs(t, err, domain.ErrCheckInNotActive)
	})

	t.Run("completed", func(t *testing.T) {
		state, _ := runInterview(t, c, []string{"good", "3", "7", "good", "friends"})
		_, err := c.Advance(context.Background(), &state, "again")
		assert.ErrorIs(t, err, domain.ErrCheckInNotActive)
		assert.Equal(t, domain.StepSocial, state.Step)
	})

	t.Run("step out of range", func(t *testing.T) {
		state := domain.CheckInState{Step: 7}
		_, err := c.Advance(context.Background(), &state, "good")
		assert.ErrorIs(t, err, domain.ErrInvalidCheckInStep)
		assert.Equal(t, 7, state.Step)
	})
}

func TestStartReplacesRunningInterview(t *testing.T) {
	c := newController()
	var state domain.CheckInState
	c.Start(&state)
	_, err := c.Advance(context.Background(), &state, "good")
	require.NoError(t, err)

	c.Start(&state)

	assert.Equal(t, domain.StepMood, state.Step)
	assert.Nil(t, state.Answers.Mood)
	assert.Empty(t, state.RawAnswers)
}

func TestCancel(t *testing.T) {
	c := newController()
	var state domain.CheckInState
	c.Start(&state)

	checkin.Cancel(&state)

	assert.False(t, state.Active())
	assert.Nil(t, checkin.Progress(state))
}

func TestQuestion(t *testing.T) {
	for step := domain.StepMood; step <= domain.StepSocial; step++ {
		q, err := checkin.Question(step)
		require.NoError(t, err)
		assert.NotEmpty(t, q)
	}
	_, err := checkin.Question(0)
	assert.ErrorIs(t, err, domain.ErrInvalidCheckInStep)
}

func TestSelectPattern(t *testing.T) {
	answers := func(mood domain.Mood, stress, energy int, focus domain.Focus, social domain.Social) domain.CheckInAnswers {
		return domain.CheckInAnswers{Mood: &mood, Stress: &stress, Energy: &energy, Focus: &focus, Social: &social}
	}

	tests := []struct {
		answers domain.CheckInAnswers
		want    string
	}{
		{answers(domain.MoodNeutral, 8, 2, domain.FocusPoor, domain.SocialNeutral), "burnout"},
		{answers(domain.MoodNeutral, 8, 6, domain.FocusPoor, domain.SocialNeutral), "overwhelmed"},
		{answers(domain.MoodNegative, 3, 6, domain.FocusGood, domain.SocialWithdrawn), "low mood with withdrawal"},
		{answers(domain.MoodNeutral, 3, 3, domain.FocusGood, domain.SocialSocial), "running on empty"},
		{answers(domain.MoodPositive, 6, 7, domain.FocusGood, domain.SocialSocial), "stress building"},
		{answers(domain.MoodPositive, 4, 6, domain.FocusGood, domain.SocialSocial), "balanced/positive"},
		{answers(domain.MoodNeutral, 4, 6, domain.FocusModerate, domain.SocialNeutral), "balanced state"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, checkin.SelectPattern(tt.answers).Name)
		})
	}
}
