package domain

import (
	"fmt"
	"strings"
)

// CrisisTier is totally ordered: TierNone < TierModerate < TierHigh < TierImmediate.
type CrisisTier int

const (
	TierNone CrisisTier = iota
	TierModerate
	TierHigh
	TierImmediate
)

var tierNames = [...]string{"none", "moderate", "high", "immediate"}

func (t CrisisTier) String() string {
	if t < TierNone || t > TierImmediate {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

func (t CrisisTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CrisisTier) UnmarshalText(b []byte) error {
	tier, err := ParseCrisisTier(string(b))
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// ParseCrisisTier parses the lower-case tier name.
func ParseCrisisTier(s string) (CrisisTier, error) {
	for i, name := range tierNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return CrisisTier(i), nil
		}
	}
	return TierNone, fmt.Errorf("unknown crisis tier %q", s)
}

// CrisisSource says which rule set produced a tier.
type CrisisSource string

const (
	CrisisSourceNone    CrisisSource = ""
	CrisisSourceKeyword CrisisSource = "keyword"
	CrisisSourceCheckIn CrisisSource = "checkin"
)

// CheckInLevel is the aggregate check-in rule outcome before it collapses to a tier.
type CheckInLevel string

const (
	CheckInLevelNormal   CheckInLevel = "normal"
	CheckInLevelModerate CheckInLevel = "moderate"
	CheckInLevelHigh     CheckInLevel = "high"
	CheckInLevelSevere   CheckInLevel = "severe"
)

// CrisisResult is the outcome of a crisis assessment.
type CrisisResult struct {
	Tier                     CrisisTier   `json:"tier"`
	TriggeredKeywords        []string     `json:"triggered_keywords"`
	NeedsImmediateHelp       bool         `json:"needs_immediate_help"`
	NeedsProfessionalSupport bool         `json:"needs_professional_support"`
	Source                   CrisisSource `json:"source,omitempty"`
	CheckInLevel             CheckInLevel `json:"checkin_level,omitempty"`

	// Resources and Message are only set when Tier != TierNone.
	Resources []CrisisResource `json:"resources,omitempty"`
	Message   string           `json:"message,omitempty"`
}

// NewCrisisResult derives the help flags from the tier.
func NewCrisisResult(tier CrisisTier, source CrisisSource, keywords []string) CrisisResult {
	return CrisisResult{
		Tier:                     tier,
		TriggeredKeywords:        keywords,
		NeedsImmediateHelp:       tier == TierImmediate,
		NeedsProfessionalSupport: tier >= TierHigh,
		Source:                   source,
	}
}

// Coverage of a crisis resource.
type Coverage string

const (
	CoverageNational Coverage = "national"
	CoverageRegional Coverage = "regional"
	CoverageLocal    Coverage = "local"
	CoverageOnline   Coverage = "online"
)

// CrisisResource is a support contact. Read-only to the engine.
type CrisisResource struct {
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Description  string   `json:"description"`
	Availability string   `json:"availability"`
	Coverage     Coverage `json:"coverage"`
	Priority     int      `json:"priority"`
}

// ResourceSet is what a ResourceLocator returns for one tier.
type ResourceSet struct {
	Immediate    []CrisisResource `json:"immediate"`
	Professional []CrisisResource `json:"professional"`
	Support      []CrisisResource `json:"support"`
}

// Empty reports whether the set holds no resources at all.
func (s ResourceSet) Empty() bool {
	return len(s.Immediate) == 0 && len(s.Professional) == 0 && len(s.Support) == 0
}

// CrisisEvent is published when a session reaches tier high or above.
type CrisisEvent struct {
	SessionID         SessionID    `json:"session_id"`
	Tier              CrisisTier   `json:"tier"`
	Source            CrisisSource `json:"source"`
	TriggeredKeywords []string     `json:"triggered_keywords"`
	At                Timestamp    `json:"at"`
}
