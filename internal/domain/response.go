package domain

// Strategy names the response strategy the composer picked.
type Strategy string

const (
	StrategyCheckIn      Strategy = "checkin"
	StrategyCrisis       Strategy = "crisis"
	StrategyContinuation Strategy = "continuation"
	StrategyIntent       Strategy = "intent"
	StrategyFallback     Strategy = "fallback"
)

// AuxiliaryPayload describes the optional action shown next to a reply.
type AuxiliaryPayload struct {
	Kind       string  `json:"kind"`
	Emotion    Emotion `json:"emotion"`
	Suggestion string  `json:"suggestion"`
}

// CheckInProgress is the client-facing view of the interview.
type CheckInProgress struct {
	Step      int    `json:"step"`
	StepName  string `json:"step_name,omitempty"`
	Completed bool   `json:"completed"`
}

// EngineResponse is the reply to one inbound message.
type EngineResponse struct {
	ReplyText           string            `json:"reply_text"`
	Emotion             Emotion           `json:"emotion"`
	CrisisTier          CrisisTier        `json:"crisis_tier"`
	ShowAuxiliaryAction bool              `json:"show_auxiliary_action"`
	AuxiliaryPayload    *AuxiliaryPayload `json:"auxiliary_payload,omitempty"`

	Strategy  Strategy         `json:"strategy"`
	Resources []CrisisResource `json:"resources,omitempty"`
	CheckIn   *CheckInProgress `json:"checkin,omitempty"`
}
