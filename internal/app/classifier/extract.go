package classifier

import (
	"regexp"
	"strconv"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// Extractors used by the check-in interview. Every one has a default bucket, so any
// answer, however malformed, yields a value.

var (
	// negations of negative words, checked before negativeMood
	notNegativeMood = []string{"not bad", "not too bad", "not so bad", "not that bad"}
	negativeMood    = []string{
		"not good", "not great", "not well", "not okay", "not ok", "not fine", "not happy",
		"bad", "sad", "terrible", "awful", "horrible", "down", "low", "depressed",
		"anxious", "stressed", "upset", "angry", "miserable", "rough", "crappy", "worse",
		"hopeless", "trapped", "worthless",
	}
	positiveMood = []string{
		"good", "great", "happy", "fine", "well", "amazing", "awesome", "excellent",
		"wonderful", "fantastic", "positive", "better", "cheerful", "content", "calm",
	}

	poorFocus = []string{
		"not good", "not great", "poor", "bad", "distracted", "scattered", "foggy", "fog",
		"can't focus", "cannot focus", "can't concentrate", "terrible", "struggling", "all over the place",
	}
	goodFocus = []string{
		"good", "great", "sharp", "focused", "clear", "excellent", "productive", "on point", "well",
	}

	withdrawnSocial = []string{
		"withdrawn", "alone", "isolated", "lonely", "avoiding", "avoid", "nobody", "no one",
		"by myself", "hiding", "don't want to see", "not social",
	}
	socialSocial = []string{
		"social", "connected", "friends", "family", "talked", "hung out", "outgoing",
		"good", "great", "people", "party",
	}
)

// ScaleBucket maps keywords to a value on the 1..10 scale.
type ScaleBucket struct {
	Keywords []string
	Value    int
}

// StressBuckets is checked in order when a stress answer has no number.
var StressBuckets = []ScaleBucket{
	{[]string{"very high", "extreme", "extremely", "overwhelmed", "overwhelming", "unbearable", "through the roof"}, 9},
	{[]string{"very low", "none", "no stress", "relaxed", "calm", "chill"}, 2},
	{[]string{"low", "little", "a bit", "not much"}, 2},
	{[]string{"moderate", "medium", "some", "average", "okay", "ok", "manageable"}, 5},
	{[]string{"high", "a lot", "lots", "very", "stressed", "bad"}, 9},
}

// EnergyBuckets is checked in order when an energy answer has no number.
var EnergyBuckets = []ScaleBucket{
	{[]string{"no energy", "exhausted", "drained", "very low", "empty", "dead", "wiped"}, 2},
	{[]string{"low", "tired", "sluggish", "sleepy", "not much"}, 2},
	{[]string{"moderate", "medium", "okay", "ok", "average", "so-so"}, 5},
	{[]string{"high", "energized", "energetic", "great", "full", "lots", "a lot", "good"}, 9},
}

const defaultScale = 5

var firstInteger = regexp.MustCompile(`-?\d+`)

// ExtractMood buckets a mood answer. "not bad" is positive; other negative phrases are
// checked before positive ones so "not good" is negative.
func ExtractMood(answer string) domain.Mood {
	text := Normalize(answer)
	switch {
	case ContainsAny(text, notNegativeMood):
		return domain.MoodPositive
	case ContainsAny(text, negativeMood):
		return domain.MoodNegative
	case ContainsAny(text, positiveMood):
		return domain.MoodPositive
	default:
		return domain.MoodNeutral
	}
}

// ExtractScale returns the first integer in the answer clamped to [1,10], else the first
// matching bucket value, else 5.
func ExtractScale(answer string, buckets []ScaleBucket) int {
	text := Normalize(answer)
	if m := firstInteger.FindString(text); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil {
			// too many digits for an int; the sign says which end it belongs to
			if m[0] == '-' {
				return 1
			}
			return 10
		}
		return clamp(n, 1, 10)
	}
	for _, b := range buckets {
		if ContainsAny(text, b.Keywords) {
			return b.Value
		}
	}
	return defaultScale
}

// ExtractFocus buckets a focus answer; default moderate.
func ExtractFocus(answer string) domain.Focus {
	text := Normalize(answer)
	switch {
	case ContainsAny(text, poorFocus):
		return domain.FocusPoor
	case ContainsAny(text, goodFocus):
		return domain.FocusGood
	default:
		return domain.FocusModerate
	}
}

// ExtractSocial buckets a social answer; default neutral.
func ExtractSocial(answer string) domain.Social {
	text := Normalize(answer)
	switch {
	case ContainsAny(text, withdrawnSocial):
		return domain.SocialWithdrawn
	case ContainsAny(text, socialSocial):
		return domain.SocialSocial
	default:
		return domain.SocialNeutral
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
