package crisis

import "github.com/PabloGalante/farum-triage/internal/domain"

var (
	emergencyServices = domain.CrisisResource{
		Name:         "Emergency Services",
		Phone:        "911",
		Description:  "Call if you or someone else is in immediate danger",
		Availability: "24/7",
		Coverage:     domain.CoverageNational,
		Priority:     1,
	}
	lifeline988 = domain.CrisisResource{
		Name:         "988 Suicide & Crisis Lifeline",
		Phone:        "988",
		Description:  "Free, confidential support for people in distress, by call or text",
		Availability: "24/7",
		Coverage:     domain.CoverageNational,
		Priority:     2,
	}
	crisisTextLine = domain.CrisisResource{
		Name:         "Crisis Text Line",
		Phone:        "Text HOME to 741741",
		Description:  "Text with a trained crisis counselor",
		Availability: "24/7",
		Coverage:     domain.CoverageNational,
		Priority:     3,
	}
	samhsaHelpline = domain.CrisisResource{
		Name:         "SAMHSA National Helpline",
		Phone:        "1-800-662-4357",
		Description:  "Treatment referral and information service",
		Availability: "24/7",
		Coverage:     domain.CoverageNational,
		Priority:     4,
	}
	namiHelpline = domain.CrisisResource{
		Name:         "NAMI HelpLine",
		Phone:        "1-800-950-6264",
		Description:  "Information, resource referrals and support",
		Availability: "Mon-Fri, 10am-10pm ET",
		Coverage:     domain.CoverageNational,
		Priority:     5,
	}
	trevorProject = domain.CrisisResource{
		Name:         "The Trevor Project",
		Phone:        "1-866-488-7386",
		Description:  "Crisis support for LGBTQ+ young people",
		Availability: "24/7",
		Coverage:     domain.CoverageNational,
		Priority:     6,
	}
	therapistFinder = domain.CrisisResource{
		Name:         "Psychology Today Therapist Finder",
		Description:  "Search for licensed therapists near you at psychologytoday.com",
		Availability: "Online",
		Coverage:     domain.CoverageOnline,
		Priority:     7,
	}
	warmlineDirectory = domain.CrisisResource{
		Name:         "Peer Warmline Directory",
		Description:  "Talk with a peer who has been there, listed at warmline.org",
		Availability: "Varies by line",
		Coverage:     domain.CoverageOnline,
		Priority:     8,
	}
)

// staticResources is used whenever the locator fails or returns nothing.
// Every non-none tier has an entry.
var staticResources = map[domain.CrisisTier]domain.ResourceSet{
	domain.TierImmediate: {
		Immediate:    []domain.CrisisResource{emergencyServices, lifeline988, crisisTextLine},
		Professional: []domain.CrisisResource{samhsaHelpline},
		Support:      []domain.CrisisResource{trevorProject},
	},
	domain.TierHigh: {
		Immediate:    []domain.CrisisResource{lifeline988, crisisTextLine},
		Professional: []domain.CrisisResource{samhsaHelpline, therapistFinder},
		Support:      []domain.CrisisResource{namiHelpline},
	},
	domain.TierModerate: {
		Immediate:    []domain.CrisisResource{lifeline988},
		Professional: []domain.CrisisResource{namiHelpline, therapistFinder},
		Support:      []domain.CrisisResource{crisisTextLine, warmlineDirectory},
	},
}

// StaticResources returns a copy of the fallback set for the tier. TierNone has none.
func StaticResources(tier domain.CrisisTier) domain.ResourceSet {
	set := staticResources[tier]
	return domain.ResourceSet{
		Immediate:    append([]domain.CrisisResource(nil), set.Immediate...),
		Professional: append([]domain.CrisisResource(nil), set.Professional...),
		Support:      append([]domain.CrisisResource(nil), set.Support...),
	}
}
