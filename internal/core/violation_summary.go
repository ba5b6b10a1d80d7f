package core

import (
	"fmt"
	"strings"

	"github.com/EmundoT/apim-governance/internal/types"
)

// Severities lists the violation severities in display order.
var Severities = []string{types.SeverityError, types.SeverityWarn, types.SeverityInfo}

// CountSeverities tallies violations per severity. Unknown severities are ignored.
func CountSeverities(violations []types.RuleViolation) types.SeverityCounts {
	var counts types.SeverityCounts
	for _, v := range violations {
		switch strings.ToUpper(v.Severity) {
		case types.SeverityError:
			counts.Error++
		case types.SeverityWarn:
			counts.Warn++
		case types.SeverityInfo:
			counts.Info++
		}
	}
	return counts
}

// FilterBySeverity keeps violations of severity. An empty severity keeps all.
func FilterBySeverity(violations []types.RuleViolation, severity string) []types.RuleViolation {
	if severity == "" {
		return violations
	}
	want := strings.ToUpper(severity)
	var out []types.RuleViolation
	for _, v := range violations {
		if strings.ToUpper(v.Severity) == want {
			out = append(out, v)
		}
	}
	return out
}

// ValidSeverity reports whether s names a known severity (case-insensitive) or is empty.
func ValidSeverity(s string) bool {
	if s == "" {
		return true
	}
	for _, known := range Severities {
		if strings.EqualFold(s, known) {
			return true
		}
	}
	return false
}

// SeveritySummaryLine renders counts as "Error: n, Warning: n, Info: n".
func SeveritySummaryLine(c types.SeverityCounts) string {
	return fmt.Sprintf("Error: %d, Warning: %d, Info: %d", c.Error, c.Warn, c.Info)
}
