package crisis

import (
	"github.com/PabloGalante/farum-triage/internal/app/classifier"
	"github.com/PabloGalante/farum-triage/internal/domain"
)

// Evaluate runs both rule sets without any I/O. The check-in table only runs when
// answers is non-nil and complete. The more severe result wins; on a tie the keyword
// result is kept. The check-in level is reported either way.
func Evaluate(message string, answers *domain.CheckInAnswers) domain.CrisisResult {
	res := EvaluateKeywords(message)
	if answers == nil || !answers.Complete() {
		return res
	}

	aggregate := EvaluateCheckIn(*answers)
	if aggregate.Tier > res.Tier {
		return aggregate
	}
	res.CheckInLevel = aggregate.CheckInLevel
	return res
}

// EvaluateKeywords walks the severity lattice. The tier is the most severe level with a
// match; triggered keywords include matches from every level.
func EvaluateKeywords(message string) domain.CrisisResult {
	text := classifier.Normalize(message)

	tier := domain.TierNone
	var triggered []string
	for _, rule := range SeverityLattice {
		matched := classifier.MatchKeywords(text, rule.Keywords)
		if len(matched) == 0 {
			continue
		}
		if rule.Tier > tier {
			tier = rule.Tier
		}
		triggered = append(triggered, matched...)
	}

	if tier == domain.TierNone {
		return domain.NewCrisisResult(domain.TierNone, domain.CrisisSourceNone, nil)
	}
	return domain.NewCrisisResult(tier, domain.CrisisSourceKeyword, triggered)
}

// EvaluateCheckIn applies the aggregate check-in table to complete answers.
func EvaluateCheckIn(answers domain.CheckInAnswers) domain.CrisisResult {
	level, rule := ClassifyCheckIn(answers)
	tier := levelTiers[level]

	if tier == domain.TierNone {
		res := domain.NewCrisisResult(domain.TierNone, domain.CrisisSourceNone, nil)
		res.CheckInLevel = level
		return res
	}
	res := domain.NewCrisisResult(tier, domain.CrisisSourceCheckIn, []string{rule})
	res.CheckInLevel = level
	return res
}

// ClassifyCheckIn returns the level and the name of the rule that produced it.
// Incomplete answers are normal.
func ClassifyCheckIn(answers domain.CheckInAnswers) (domain.CheckInLevel, string) {
	if !answers.Complete() {
		return domain.CheckInLevelNormal, ""
	}
	a := Answers{
		Mood:   *answers.Mood,
		Stress: *answers.Stress,
		Energy: *answers.Energy,
		Focus:  *answers.Focus,
		Social: *answers.Social,
	}
	for _, rule := range CheckInRules {
		if rule.Match(a) {
			return rule.Level, rule.Name
		}
	}
	return domain.CheckInLevelNormal, ""
}
