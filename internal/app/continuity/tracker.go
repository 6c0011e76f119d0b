// Package continuity decides whether a message continues the ongoing therapeutic thread
// and keeps the bounded conversation memory up to date.
package continuity

import (
	"strings"
	"unicode/utf8"

	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

const minThreadLength = 10

// AnalyzeContinuity decides whether message continues the thread held in convCtx.
// Greetings, very short messages and messages without any reference to something said
// before are always a new topic.
func AnalyzeContinuity(message string, convCtx domain.ConversationContext) domain.ContinuitySnapshot {
	text := classifier.Normalize(message)
	newTopic := domain.ContinuitySnapshot{IsNewTopic: true}

	if obviouslyNewTopic(text) {
		return newTopic
	}
	if !ContinuableTopics[convCtx.MainTopic] {
		return newTopic
	}

	rel := domain.Relationship{}
	if matched := classifier.MatchKeywords(text, counterfactuals); len(matched) > 0 {
		rel.Counterfactual = true
		rel.MatchedPhrases = append(rel.MatchedPhrases, matched...)
	}
	if matched := referents(text, convCtx); len(matched) > 0 {
		rel.Referent = true
		rel.MatchedPhrases = append(rel.MatchedPhrases, matched...)
	}
	if !rel.Counterfactual && !rel.Referent {
		return newTopic
	}

	rel.NewAspect = detectAspect(text)
	return domain.ContinuitySnapshot{
		IsContinuation:            true,
		RelationshipToLastMessage: rel,
	}
}

func obviouslyNewTopic(text string) bool {
	if utf8.RuneCountInString(text) < minThreadLength {
		return true
	}
	if isGreeting(text) {
		return true
	}
	return !classifier.ContainsAny(text, references)
}

func isGreeting(text string) bool {
	bare := strings.TrimRight(text, "!.?, ")
	for _, g := range greetings {
		if bare == g {
			return true
		}
	}
	return false
}

// referents returns the direct mentions of the person or thread held in the context.
func referents(text string, convCtx domain.ConversationContext) []string {
	var matched []string
	if person := convCtx.KeyDetails["person"]; person != "" && classifier.ContainsKeyword(text, person) {
		matched = append(matched, person)
	}
	matched = append(matched, classifier.MatchKeywords(text, personPronouns)...)
	for _, phrase := range []string{"that situation", "what i said", "my problem"} {
		if classifier.ContainsKeyword(text, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

func detectAspect(text string) string {
	for _, a := range aspects {
		if classifier.ContainsAny(text, a.keywords) {
			return a.name
		}
	}
	return ""
}

// Analyze extracts what a message says about the thread: topic, situation, focus, emotion
// and key details. Messages without a recognised topic leave those fields empty.
func Analyze(message string) domain.ContinuityAnalysis {
	text := classifier.Normalize(message)
	analysis := domain.ContinuityAnalysis{
		Emotion: classifier.Classify(message).Emotion,
	}

	for _, topic := range Topics {
		if classifier.ContainsAny(text, topic.Keywords) {
			analysis.Topic = topic.Name
			analysis.Situation = topic.Situation
			analysis.TherapeuticFocus = topic.Focus
			break
		}
	}

	if person := detectPerson(text); person != "" {
		analysis.KeyDetails = map[string]string{"person": person}
	}
	return analysis
}

// detectPerson finds "my <person>" and returns the person word.
func detectPerson(text string) string {
	for _, p := range people {
		if classifier.ContainsKeyword(text, "my "+p) {
			return p
		}
	}
	return ""
}
