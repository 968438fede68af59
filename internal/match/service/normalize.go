package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Combining marks, dropped after NFD decomposition to strip accents
// (ÁÉÍÓÚÑÜ → AEIOUNU) without touching the base letters.
var marks = runes.In(unicode.Mn)

// deaccent builds the transformer per call: a transform.Chain carries
// internal buffers, so a shared instance would race across goroutines.
func deaccent() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(marks))
}

// Maximal runs of digits in already-normalized text. Leading zeros survive.
var digitRuns = regexp.MustCompile(`[0-9]+`)

// Normalize produces the canonical comparison form: accents stripped,
// upper-cased, every character outside [A-Z0-9 ] replaced with a space.
// Pure and idempotent; spacing is preserved as-is, tokenization happens
// downstream.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(deaccent(), s)
	if err != nil {
		out = s
	}
	out = strings.ToUpper(out)

	b := make([]rune, 0, len(out))
	for _, r := range out {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b = append(b, r)
		default:
			b = append(b, ' ')
		}
	}
	return string(b)
}

// MeasureTokens extracts the digit runs of a normalized string. Units like
// CM/KG are already gone after Normalize, so "120X60X75" yields the three
// bare dimensions.
func MeasureTokens(norm string) []string {
	return digitRuns.FindAllString(norm, -1)
}
