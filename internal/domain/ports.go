package domain

import "context"

// Generator is the optional generative text backend.
type Generator interface {
	GenerateReply(ctx context.Context, prompt string, convCtx PromptContext) (string, error)
}

// PromptContext gives the generative backend minimal context about the conversation.
type PromptContext struct {
	SessionID SessionID
	Emotion   Emotion
	Intent    Intent
	Topic     string
	History   []Turn // last N turns
}

// ResourceLocator returns ranked crisis-support contacts for a tier.
type ResourceLocator interface {
	FindResources(ctx context.Context, tier CrisisTier) (ResourceSet, error)
}

// MoodEntry is one item of the user's mood log.
type MoodEntry struct {
	EmotionLabel Emotion   `json:"emotion_label" bson:"emotion_label"`
	Timestamp    Timestamp `json:"timestamp" bson:"timestamp"`
}

// MoodHistory is the read-only mood log collaborator, newest entry last.
type MoodHistory interface {
	RecentMoods(ctx context.Context, sessionID SessionID, limit int) ([]MoodEntry, error)
}

// MoodRecorder is implemented by mood logs the engine may write to.
type MoodRecorder interface {
	AppendMood(ctx context.Context, sessionID SessionID, entry MoodEntry) error
}

// CrisisNotifier is told about sessions reaching tier high or above.
type CrisisNotifier interface {
	NotifyCrisis(ctx context.Context, event CrisisEvent) error
}

// ContextWriter persists the conversation context of a session.
type ContextWriter interface {
	UpdateContext(ctx context.Context, id SessionID, convCtx ConversationContext) error
}

// SessionStore defines session persistence. UpdateSession writes everything except the
// conversation context, which only the continuity tracker writes through UpdateContext.
type SessionStore interface {
	ContextWriter
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID) (*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
}
