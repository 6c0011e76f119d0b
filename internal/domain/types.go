package domain

import "time"

type SessionID string
type TurnID string

type Speaker string

const (
	SpeakerUser   Speaker = "user"
	SpeakerSystem Speaker = "system"
)

type Timestamp = time.Time

// Emotion is a label from the classifier's fixed vocabulary.
type Emotion string

const (
	EmotionSad      Emotion = "sad"
	EmotionAnxious  Emotion = "anxious"
	EmotionAngry    Emotion = "angry"
	EmotionHappy    Emotion = "happy"
	EmotionStressed Emotion = "stressed"
	EmotionConfused Emotion = "confused"
	EmotionLonely   Emotion = "lonely"
	EmotionTired    Emotion = "tired"
	EmotionNeutral  Emotion = "neutral"
)

// Intent is what the user seems to want from the turn.
type Intent string

const (
	IntentGreeting             Intent = "greeting"
	IntentCasual               Intent = "casual"
	IntentRomanticRequest      Intent = "romantic_request"
	IntentAffectionRequest     Intent = "affection_request"
	IntentDirectRequest        Intent = "direct_request"
	IntentSeekingAdvice        Intent = "seeking_advice"
	IntentSeekingGuidance      Intent = "seeking_guidance"
	IntentSeekingUnderstanding Intent = "seeking_understanding"
	IntentSharingFeelings      Intent = "sharing_feelings"
	IntentContextualSharing    Intent = "contextual_sharing"
)

// ClassificationResult is the output of the text classifier for one message.
type ClassificationResult struct {
	Emotion         Emotion  `json:"emotion"`
	NeedsMusic      bool     `json:"needs_music"`
	Intent          Intent   `json:"intent"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// AuxiliaryEmotions are the emotions that get an auxiliary action (music) offer.
var AuxiliaryEmotions = map[Emotion]bool{
	EmotionSad:      true,
	EmotionAnxious:  true,
	EmotionAngry:    true,
	EmotionHappy:    true,
	EmotionStressed: true,
}
