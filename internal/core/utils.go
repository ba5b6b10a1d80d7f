package core

import (
	"fmt"
	"strings"
)

// Pluralize returns the singular or plural form based on count.
// Examples:
//
//	Pluralize(1, "ruleset", "rulesets") => "1 ruleset"
//	Pluralize(2, "ruleset", "rulesets") => "2 rulesets"
//	Pluralize(0, "ruleset", "rulesets") => "0 rulesets"
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// MaskSecret hides all but the last four characters of a token.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", 8)
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}

// PassRate returns the passed share of counts as a percentage, 0 when nothing was evaluated.
func PassRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) * 100 / float64(total)
}
