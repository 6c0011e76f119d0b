// Package crisis decides how severe a message or a finished check-in is and builds the
// safety message that goes with it.
package crisis

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/farum-triage/internal/domain"
	"github.com/PabloGalante/farum-triage/internal/observability"
)

const defaultLookupTimeout = 3 * time.Second

// Policy is the crisis escalation policy. The zero value is not usable; use NewPolicy.
type Policy struct {
	locator domain.ResourceLocator
	timeout time.Duration
}

// NewPolicy creates a policy. locator may be nil, in which case the static table is used.
func NewPolicy(locator domain.ResourceLocator, timeout time.Duration) *Policy {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &Policy{
		locator: locator,
		timeout: timeout,
	}
}

// Assess evaluates the message (and the answers, when complete) and, for any tier above
// none, attaches ranked resources and the safety message. It never fails: a broken or
// empty locator falls back to the static table.
func (p *Policy) Assess(ctx context.Context, message string, answers *domain.CheckInAnswers) domain.CrisisResult {
	res := Evaluate(message, answers)
	if res.Tier == domain.TierNone {
		return res
	}

	log := observability.LoggerFromContext(ctx).With(
		"tier", res.Tier.String(),
		"source", res.Source,
	)

	set, err := p.lookup(ctx, res.Tier)
	switch {
	case err != nil:
		log.Warnw("resource lookup failed, using static resources", "error", err)
		set = StaticResources(res.Tier)
	case set.Empty():
		log.Warnw("resource lookup returned nothing, using static resources")
		set = StaticResources(res.Tier)
	}

	res.Resources = Flatten(set)
	res.Message = ComposeMessage(res.Tier, res.Resources)

	log.Infow("crisis assessed", "resources", len(res.Resources))
	return res
}

func (p *Policy) lookup(ctx context.Context, tier domain.CrisisTier) (set domain.ResourceSet, err error) {
	if p.locator == nil {
		return domain.ResourceSet{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			set, err = domain.ResourceSet{}, fmt.Errorf("resource locator panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.locator.FindResources(ctx, tier)
}
