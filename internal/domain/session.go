package domain

// Session is the full state of one conversation. The engine owns it; deleting it is
// somebody else's job.
type Session struct {
	ID        SessionID           `json:"id"`
	CreatedAt Timestamp           `json:"created_at"`
	UpdatedAt Timestamp           `json:"updated_at"`
	CheckIn   CheckInState        `json:"checkin"`
	Context   ConversationContext `json:"context"`
	Turns     []Turn              `json:"turns"`
}

// Turn is one message in the append-only session history.
type Turn struct {
	ID             TurnID                `json:"id"`
	Speaker        Speaker               `json:"speaker"`
	Text           string                `json:"text"`
	Timestamp      Timestamp             `json:"timestamp"`
	Classification *ClassificationResult `json:"classification,omitempty"`
	CrisisTier     CrisisTier            `json:"crisis_tier"`
}

// Check-in steps. StepInactive means no interview is running.
const (
	StepInactive = 0
	StepMood     = 1
	StepStress   = 2
	StepEnergy   = 3
	StepFocus    = 4
	StepSocial   = 5
)

// CheckInStepNames maps a step to its name.
var CheckInStepNames = map[int]string{
	StepMood:   "mood",
	StepStress: "stress",
	StepEnergy: "energy",
	StepFocus:  "focus",
	StepSocial: "social",
}

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNegative Mood = "negative"
	MoodNeutral  Mood = "neutral"
)

type Focus string

const (
	FocusGood     Focus = "good"
	FocusModerate Focus = "moderate"
	FocusPoor     Focus = "poor"
)

type Social string

const (
	SocialSocial    Social = "social"
	SocialNeutral   Social = "neutral"
	SocialWithdrawn Social = "withdrawn"
)

// CheckInAnswers holds one field per step; nil means not answered yet.
type CheckInAnswers struct {
	Mood   *Mood   `json:"mood"`
	Stress *int    `json:"stress"`
	Energy *int    `json:"energy"`
	Focus  *Focus  `json:"focus"`
	Social *Social `json:"social"`
}

// Complete reports whether all five answers are present.
func (a CheckInAnswers) Complete() bool {
	return a.Mood != nil && a.Stress != nil && a.Energy != nil && a.Focus != nil && a.Social != nil
}

// CheckInState tracks the 5-step wellness interview.
type CheckInState struct {
	Step       int            `json:"step"`
	Answers    CheckInAnswers `json:"answers"`
	RawAnswers []string       `json:"raw_answers,omitempty"`
	Completed  bool           `json:"completed"`
	StartedAt  *Timestamp     `json:"started_at,omitempty"`
}

// Active reports whether an interview is waiting for an answer.
func (s CheckInState) Active() bool {
	return s.Step >= StepMood && s.Step <= StepSocial && !s.Completed
}

// HistoryEntry is one item of the bounded session memory.
type HistoryEntry struct {
	Message   string             `json:"message"`
	Analysis  ContinuityAnalysis `json:"analysis"`
	Timestamp Timestamp          `json:"timestamp"`
}

// ConversationContext is the tracker's memory of the ongoing therapeutic thread.
// Only the continuity tracker writes it, after the reply is produced.
type ConversationContext struct {
	MainTopic            string            `json:"main_topic,omitempty"`
	KeyDetails           map[string]string `json:"key_details,omitempty"`
	LastTherapeuticFocus string            `json:"last_therapeutic_focus,omitempty"`
	OngoingSituation     string            `json:"ongoing_situation,omitempty"`
	EmotionalState       string            `json:"emotional_state,omitempty"`
	SessionHistory       []HistoryEntry    `json:"session_history,omitempty"`
}

// ContinuityAnalysis is what the tracker learned from one message.
type ContinuityAnalysis struct {
	Topic            string            `json:"topic,omitempty"`
	Situation        string            `json:"situation,omitempty"`
	TherapeuticFocus string            `json:"therapeutic_focus,omitempty"`
	Emotion          Emotion           `json:"emotion,omitempty"`
	KeyDetails       map[string]string `json:"key_details,omitempty"`
}

// Relationship describes how a message relates to the previous thread.
type Relationship struct {
	Counterfactual bool     `json:"counterfactual"`
	Referent       bool     `json:"referent"`
	MatchedPhrases []string `json:"matched_phrases,omitempty"`
	NewAspect      string   `json:"new_aspect,omitempty"`
}

// ContinuitySnapshot is the per-message continuation decision.
type ContinuitySnapshot struct {
	IsNewTopic                bool         `json:"is_new_topic"`
	IsContinuation            bool         `json:"is_continuation"`
	RelationshipToLastMessage Relationship `json:"relationship_to_last_message"`
}
