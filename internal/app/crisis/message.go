package crisis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

const (
	emergencyInstruction = "If you are in immediate danger or might act on these thoughts, please call 911 " +
		"or your local emergency services now, or go to the nearest emergency room."

	groundingTechnique = "While you reach out, try grounding yourself with 5-4-3-2-1: notice 5 things you can see, " +
		"4 you can touch, 3 you can hear, 2 you can smell and 1 you can taste."

	breathingTechnique = "Right now, try box breathing with me: breathe in for 4 counts, hold for 4, " +
		"breathe out for 4, hold for 4. Repeat it a few times."
)

// Flatten merges a resource set into one ranked list: national coverage first, then by
// priority. Duplicates (same name) keep their first occurrence.
func Flatten(set domain.ResourceSet) []domain.CrisisResource {
	all := make([]domain.CrisisResource, 0, len(set.Immediate)+len(set.Professional)+len(set.Support))
	seen := make(map[string]bool)
	for _, group := range [][]domain.CrisisResource{set.Immediate, set.Professional, set.Support} {
		for _, r := range group {
			if seen[r.Name] {
				continue
			}
			seen[r.Name] = true
			all = append(all, r)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		ni := all[i].Coverage == domain.CoverageNational
		nj := all[j].Coverage == domain.CoverageNational
		if ni != nj {
			return ni
		}
		return all[i].Priority < all[j].Priority
	})
	return all
}

// ComposeMessage builds the tier-specific safety message. TierNone yields "".
func ComposeMessage(tier domain.CrisisTier, resources []domain.CrisisResource) string {
	var b strings.Builder

	switch tier {
	case domain.TierImmediate:
		b.WriteString("I'm really concerned about your safety right now, and I'm glad you told me. ")
		b.WriteString("You don't have to face this alone, and there are people ready to help you this minute.\n\n")
		b.WriteString("Please reach out now:\n")
		writeResources(&b, resources)
		b.WriteString("\n")
		b.WriteString(emergencyInstruction)
		b.WriteString("\n\n")
		b.WriteString(groundingTechnique)
	case domain.TierHigh:
		b.WriteString("It sounds like you're carrying a lot of pain right now, and I want you to be safe. ")
		b.WriteString("You deserve support from someone who can be there with you.\n\n")
		b.WriteString("These lines are free and confidential:\n")
		writeResources(&b, resources)
		b.WriteString("\n")
		b.WriteString("Talking with a counselor, therapist or doctor can really help. ")
		b.WriteString("If it feels hard to reach out alone, a trusted friend or family member can make the call with you.")
	case domain.TierModerate:
		b.WriteString("That sounds really heavy, and it makes sense that you're struggling. ")
		b.WriteString("Feelings like this can ease, and you don't have to sort them out on your own.\n\n")
		b.WriteString(breathingTechnique)
		b.WriteString("\n\nIf you'd like to talk to someone, these are available:\n")
		writeResources(&b, resources)
		b.WriteString("\nI'm here to keep talking too. What has been weighing on you the most?")
	default:
		return ""
	}

	return b.String()
}

func writeResources(b *strings.Builder, resources []domain.CrisisResource) {
	for _, r := range resources {
		switch {
		case r.Phone != "" && r.Availability != "":
			fmt.Fprintf(b, "• %s: %s (%s)\n", r.Name, r.Phone, r.Availability)
		case r.Phone != "":
			fmt.Fprintf(b, "• %s: %s\n", r.Name, r.Phone)
		default:
			fmt.Fprintf(b, "• %s: %s\n", r.Name, r.Description)
		}
	}
}
