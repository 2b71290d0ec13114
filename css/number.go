package css

import (
	"strconv"
	"strings"
)

// formatNumber renders v as the shortest decimal with at most two
// fractional digits. Without leadingZero, fractions drop the integer zero
// (".5" rather than "0.5").
func formatNumber(v float64, leadingZero bool) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	if !leadingZero {
		switch {
		case strings.HasPrefix(s, "0."):
			s = s[1:]
		case strings.HasPrefix(s, "-0."):
			s = "-" + s[2:]
		}
	}
	return s
}

// hasLeadingZero reports whether a numeric token was written as "0.x".
func hasLeadingZero(repr string) bool {
	repr = strings.TrimLeft(repr, "+-")
	return strings.HasPrefix(repr, "0.")
}
