package classifier

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize lower-cases text and folds typographic apostrophes so "I’m" matches "i'm".
func Normalize(text string) string {
	return apostrophes.Replace(strings.ToLower(strings.TrimSpace(text)))
}

// ContainsKeyword reports whether keyword occurs in normalized text on word boundaries:
// the runes right before and after the occurrence must not be letters or digits.
// "mad" matches "so mad!" but not "made"; inflections must be listed as their own keywords.
func ContainsKeyword(normalized, keyword string) bool {
	if keyword == "" {
		return false
	}
	from := 0
	for from <= len(normalized)-len(keyword) {
		i := strings.Index(normalized[from:], keyword)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(keyword)
		if boundaryBefore(normalized, start) && boundaryAfter(normalized, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(normalized[start:])
		from = start + size
	}
	return false
}

// MatchKeywords returns the keywords that occur in normalized text, in table order.
func MatchKeywords(normalized string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if ContainsKeyword(normalized, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// ContainsAny reports whether any keyword occurs in normalized text.
func ContainsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if ContainsKeyword(normalized, kw) {
			return true
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
