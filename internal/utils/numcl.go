package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNum = regexp.MustCompile(`[^0-9.,\-]`)

// thousands-dot form: 1.234 / 12.345.678 (groups of exactly three)
var rxThousandsDots = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseFloatCL parses numbers as Chilean exports write them: "1.234,50",
// "$ 12.990", "1.234.567", "(500)" for negatives, NBSP as group separator.
// Plain "12.5" still parses as a decimal.
func ParseFloatCL(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	// spaces of all stripes are group separators here
	repl := strings.NewReplacer(" ", "", " ", "", " ", "", " ", "", "\t", "")
	s = repl.Replace(s)
	s = rxKeepNum.ReplaceAllString(s, "")

	switch {
	case strings.Count(s, ",") > 1:
		// several commas can only be group separators
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, ".", "")
	case strings.Contains(s, ","):
		// comma is the decimal mark, any dots are thousands separators
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case rxThousandsDots.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
