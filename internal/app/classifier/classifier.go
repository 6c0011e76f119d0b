// Package classifier turns a free-text message into an emotion, an intent and the
// keywords that justified them. Everything here is pure and deterministic.
package classifier

import "github.com/PabloGalante/farum-triage/internal/domain"

// Classify labels a message. No matching rule yields neutral / contextual_sharing.
func Classify(message string) domain.ClassificationResult {
	text := Normalize(message)

	emotion, emotionKeywords := classifyEmotion(text)
	intent, intentKeywords := classifyIntent(text)

	matched := make([]string, 0, len(emotionKeywords)+len(intentKeywords))
	seen := make(map[string]bool, cap(matched))
	for _, kw := range append(emotionKeywords, intentKeywords...) {
		if !seen[kw] {
			seen[kw] = true
			matched = append(matched, kw)
		}
	}

	return domain.ClassificationResult{
		Emotion:         emotion,
		NeedsMusic:      NeedsMusic(emotion),
		Intent:          intent,
		MatchedKeywords: matched,
	}
}

func classifyEmotion(text string) (domain.Emotion, []string) {
	best := domain.EmotionNeutral
	var bestKeywords []string
	for _, rule := range EmotionRules {
		matched := MatchKeywords(text, rule.Keywords)
		// strictly greater keeps the earlier row on ties
		if len(matched) > len(bestKeywords) {
			best = rule.Emotion
			bestKeywords = matched
		}
	}
	return best, bestKeywords
}

func classifyIntent(text string) (domain.Intent, []string) {
	for _, rule := range IntentRules {
		if matched := MatchKeywords(text, rule.Keywords); len(matched) > 0 {
			return rule.Intent, matched
		}
	}
	return domain.IntentContextualSharing, nil
}

// NeedsMusic reports whether the emotion comes with a music suggestion.
func NeedsMusic(emotion domain.Emotion) bool {
	_, ok := musicEmotions[emotion]
	return ok
}

// MusicSuggestion returns a playlist hint for the emotion, or "" when there is none.
func MusicSuggestion(emotion domain.Emotion) string {
	return musicEmotions[emotion]
}
