package crisis

import "github.com/PabloGalante/farum-triage/internal/domain"

// SeverityRule is one level of the keyword lattice.
type SeverityRule struct {
	Tier     domain.CrisisTier
	Keywords []string
}

// SeverityLattice is ordered from most to least severe; the first level with a match wins.
var SeverityLattice = []SeverityRule{
	{domain.TierImmediate, []string{
		"kill myself", "killing myself", "suicide", "suicidal", "end my life", "ending my life",
		"take my own life", "want to die", "wanna die", "better off dead", "end it all",
		"don't want to live", "don't want to be alive", "no reason to live",
	}},
	{domain.TierHigh, []string{
		"hurt myself", "hurting myself", "harm myself", "harming myself", "self harm", "self-harm",
		"cut myself", "cutting myself", "overdose", "starve myself", "punish myself",
		"not safe with myself",
	}},
	{domain.TierModerate, []string{
		"hopeless", "hopelessness", "no point", "pointless", "give up", "giving up",
		"can't go on", "can't take it anymore", "worthless", "nothing matters",
		"empty inside", "no way out", "trapped", "a burden", "despair",
	}},
}

// CheckInRule is one row of the aggregate check-in table.
type CheckInRule struct {
	Name  string
	Level domain.CheckInLevel
	Match func(a Answers) bool
}

// Answers is a dereferenced view of complete check-in answers.
type Answers struct {
	Mood   domain.Mood
	Stress int
	Energy int
	Focus  domain.Focus
	Social domain.Social
}

// CheckInRules is evaluated in order; the first matching row sets the level.
var CheckInRules = []CheckInRule{
	{
		Name:  "stress>=9 & mood=negative & (energy<=2 | social=withdrawn)",
		Level: domain.CheckInLevelSevere,
		Match: func(a Answers) bool {
			return a.Stress >= 9 && a.Mood == domain.MoodNegative &&
				(a.Energy <= 2 || a.Social == domain.SocialWithdrawn)
		},
	},
	{
		Name:  "stress>=8 & mood=negative",
		Level: domain.CheckInLevelHigh,
		Match: func(a Answers) bool {
			return a.Stress >= 8 && a.Mood == domain.MoodNegative
		},
	},
	{
		Name:  "energy<=2 & mood=negative & social=withdrawn",
		Level: domain.CheckInLevelHigh,
		Match: func(a Answers) bool {
			return a.Energy <= 2 && a.Mood == domain.MoodNegative && a.Social == domain.SocialWithdrawn
		},
	},
	{
		Name:  "stress>=7",
		Level: domain.CheckInLevelModerate,
		Match: func(a Answers) bool {
			return a.Stress >= 7
		},
	},
	{
		Name:  "mood=negative & energy<=3",
		Level: domain.CheckInLevelModerate,
		Match: func(a Answers) bool {
			return a.Mood == domain.MoodNegative && a.Energy <= 3
		},
	},
	{
		Name:  "social=withdrawn & focus=poor",
		Level: domain.CheckInLevelModerate,
		Match: func(a Answers) bool {
			return a.Social == domain.SocialWithdrawn && a.Focus == domain.FocusPoor
		},
	},
}

// levelTiers collapses check-in levels to crisis tiers.
var levelTiers = map[domain.CheckInLevel]domain.CrisisTier{
	domain.CheckInLevelSevere:   domain.TierHigh,
	domain.CheckInLevelHigh:     domain.TierHigh,
	domain.CheckInLevelModerate: domain.TierModerate,
	domain.CheckInLevelNormal:   domain.TierNone,
}
