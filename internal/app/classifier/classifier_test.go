package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		emotion    domain.Emotion
		intent     domain.Intent
		needsMusic bool
	}{
		{"sad breakup", "I'm so sad about my breakup", domain.EmotionSad, domain.IntentSharingFeelings, true},
		{"bare greeting", "hi", domain.EmotionNeutral, domain.IntentGreeting, false},
		{"no rule matches", "the bus was late today", domain.EmotionNeutral, domain.IntentContextualSharing, false},
		{"anxious advice", "I'm worried about my exam, what should I do?", domain.EmotionAnxious, domain.IntentSeekingAdvice, true},
		{"angry", "I feel so mad and frustrated at my roommate", domain.EmotionAngry, domain.IntentSharingFeelings, true},
		{"happy news", "Good news! I'm so excited, I got the job", domain.EmotionHappy, domain.IntentSharingFeelings, true},
		{"stressed", "Work is overwhelming with all these deadlines", domain.EmotionStressed, domain.IntentContextualSharing, true},
		{"confused", "I have mixed feelings and I'm not sure", domain.EmotionConfused, domain.IntentContextualSharing, false},
		{"request beats greeting", "hey, can you recommend something?", domain.EmotionNeutral, domain.IntentDirectRequest, false},
		{"affection", "I need a hug", domain.EmotionNeutral, domain.IntentAffectionRequest, false},
		{"romantic", "will you be my girlfriend", domain.EmotionNeutral, domain.IntentRomanticRequest, false},
		{"understanding", "Why do I always end up like this?", domain.EmotionNeutral, domain.IntentSeekingUnderstanding, false},
		{"guidance", "I don't know how to cope with this", domain.EmotionNeutral, domain.IntentSeekingGuidance, false},
		{"casual", "lol nothing much", domain.EmotionNeutral, domain.IntentCasual, false},
		{"curly apostrophe", "I’m feeling lonely", domain.EmotionLonely, domain.IntentSharingFeelings, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.message)
			assert.Equal(t, tt.emotion, got.Emotion)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.needsMusic, got.NeedsMusic)
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	msgs := []string{
		"I'm so sad about my breakup",
		"I hate how stressed and anxious I am",
		"",
		"hello hello hello",
	}
	for _, m := range msgs {
		first := classifier.Classify(m)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, classifier.Classify(m), m)
		}
	}
}

func TestClassify_HighestScoreWins(t *testing.T) {
	// one sad keyword against two anxious keywords
	got := classifier.Classify("sad, anxious and so worried")
	assert.Equal(t, domain.EmotionAnxious, got.Emotion)
	assert.ElementsMatch(t, []string{"anxious", "worried"}, got.MatchedKeywords)
}

func TestClassify_TieGoesToEarlierRow(t *testing.T) {
	// sad sits before angry in the table
	got := classifier.Classify("sad and angry")
	assert.Equal(t, domain.EmotionSad, got.Emotion)
}

func TestClassify_IntentRowOrderIsPriority(t *testing.T) {
	rowOf := func(intent domain.Intent) int {
		for i, rule := range classifier.IntentRules {
			if rule.Intent == intent {
				return i
			}
		}
		t.Fatalf("intent %s not in table", intent)
		return -1
	}
	assert.Less(t, rowOf(domain.IntentRomanticRequest), rowOf(domain.IntentGreeting))

	// both rows match; the earlier one wins regardless of keyword count
	got := classifier.Classify("hi hello hey, do you love me")
	assert.Equal(t, domain.IntentRomanticRequest, got.Intent)
}

func TestClassify_WordBoundaries(t *testing.T) {
	// "mad" inside "made", "hi" inside "this", "down" inside "download"
	got := classifier.Classify("I made this download yesterday")
	assert.Equal(t, domain.EmotionNeutral, got.Emotion)
	assert.Equal(t, domain.IntentContextualSharing, got.Intent)
	assert.Empty(t, got.MatchedKeywords)
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		text, kw string
		want     bool
	}{
		{"so mad!", "mad", true},
		{"i made it", "mad", false},
		{"mad", "mad", true},
		{"i hated it", "hate", false},
		{"i hated it", "hated", true},
		{"what should i do?", "should i", true},
		{"madmad mad", "mad", true},
		{"", "mad", false},
		{"mad", "", false},
		{"café triste", "triste", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifier.ContainsKeyword(tt.text, tt.kw), "%q in %q", tt.kw, tt.text)
	}
}

func TestMusicSuggestion(t *testing.T) {
	for _, e := range []domain.Emotion{
		domain.EmotionSad, domain.EmotionAnxious, domain.EmotionAngry,
		domain.EmotionHappy, domain.EmotionStressed,
	} {
		assert.True(t, classifier.NeedsMusic(e), e)
		assert.NotEmpty(t, classifier.MusicSuggestion(e), e)
	}
	assert.False(t, classifier.NeedsMusic(domain.EmotionNeutral))
	assert.Empty(t, classifier.MusicSuggestion(domain.EmotionConfused))
}
