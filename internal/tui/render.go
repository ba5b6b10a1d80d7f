package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/types"
)

const statusBarWidth = 40

var (
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	stylePassed  = lipgloss.NewStyle().Foreground(colorPassed)
	styleFailed  = lipgloss.NewStyle().Foreground(colorFailed)
	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	barPassed    = lipgloss.NewStyle().Background(colorPassed)
	barFailed    = lipgloss.NewStyle().Background(colorFailed)
	barUnchecked = lipgloss.NewStyle().Background(lipgloss.Color("237"))
)

// newTable returns a table in the console's house style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(tableCellStyle)
}

// tableCellStyle styles the header row (row 0 in this lipgloss version) apart from data rows.
func tableCellStyle(row, _ int) lipgloss.Style {
	if row == 0 {
		return styleHeader
	}
	return styleCell
}

// ========================================
// Compliance
// ========================================

// ComplianceTitle is the heading of a compliance summary.
func ComplianceTitle(name string) string {
	return "Compliance Summary - " + name
}

// RenderStatusBar draws passed and failed shares of width cells with their legend.
// An empty count renders an unfilled bar.
func RenderStatusBar(counts types.StatusCounts, width int) string {
	total := counts.Total()
	bar := barUnchecked.Render(strings.Repeat(" ", width))
	if total > 0 {
		passed := counts.Passed * width / total
		if counts.Passed > 0 && passed == 0 {
			passed = 1
		}
		if counts.Failed > 0 && passed == width {
			passed = width - 1
		}
		bar = barPassed.Render(strings.Repeat(" ", passed)) + barFailed.Render(strings.Repeat(" ", width-passed))
	}
	legend := stylePassed.Render(fmt.Sprintf("Passed (%d)", counts.Passed)) + "  " +
		styleFailed.Render(fmt.Sprintf("Failed (%d)", counts.Failed))
	return bar + "\n" + legend
}

// RenderRulesetTable lists each evaluated ruleset once.
func RenderRulesetTable(rulesets []types.RulesetResult) string {
	t := newTable("Ruleset", "Status")
	for _, r := range rulesets {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		t.Row(name, renderRulesetStatus(r.Status))
	}
	return t.String()
}

func renderRulesetStatus(s types.RulesetStatus) string {
	switch s {
	case types.RulesetPassed:
		return stylePassed.Render(string(s))
	case types.RulesetFailed:
		return styleFailed.Render(string(s))
	default:
		return styleDim.Render(string(s))
	}
}

// RenderComplianceState renders what a compliance view currently shows.
func RenderComplianceState(state types.ComplianceState, artifact types.ArtifactRef) string {
	name := state.Summary.ArtifactName
	if name == "" {
		name = artifact.Name
	}
	if name == "" {
		name = artifact.ID
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(ComplianceTitle(name)) + "\n")

	switch {
	case state.Skipped:
		b.WriteString(styleDim.Render("Revisions are not evaluated for compliance."))
		return b.String()
	case state.Loading:
		b.WriteString(styleDim.Render("Loading compliance..."))
		return b.String()
	}

	b.WriteString(RenderStatusBar(state.Summary.Counts, statusBarWidth))
	if state.Err != nil {
		b.WriteString("\n" + styleErr.Render("Could not load compliance: "+state.Err.Error()))
		return b.String()
	}
	if len(state.Summary.Rulesets) > 0 {
		b.WriteString("\n" + RenderRulesetTable(state.Summary.Rulesets))
	} else {
		b.WriteString("\n" + styleDim.Render("No rulesets evaluated."))
	}
	return b.String()
}

// PrintComplianceState prints a rendered compliance state.
func PrintComplianceState(state types.ComplianceState, artifact types.ArtifactRef) {
	fmt.Println(RenderComplianceState(state, artifact))
}

// ========================================
// Policies
// ========================================

// RenderPolicyTable renders the policy list. Descriptions are truncated to keep rows on one line.
func RenderPolicyTable(rows []types.PolicyRow) string {
	if len(rows) == 0 {
		return styleDim.Render("No governance policies found.")
	}
	t := newTable("Name", "Description", "Applies when", "Applies to")
	for _, r := range rows {
		t.Row(r.Name, truncate(r.Description, 48), r.AppliesWhen, r.AppliesTo)
	}
	return t.String()
}

// ========================================
// Violations
// ========================================

// RenderViolations renders a ruleset's violations under its severity summary line.
func RenderViolations(detail *types.RulesetValidationDetail, counts types.SeverityCounts) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(detail.Name) + " " + renderRulesetStatus(detail.Status) + "\n")
	b.WriteString(core.SeveritySummaryLine(counts) + "\n")
	if len(detail.Violations) == 0 {
		b.WriteString(styleDim.Render("No violations."))
		return b.String()
	}
	t := newTable("Severity", "Rule", "Message", "Path")
	for _, v := range detail.Violations {
		t.Row(renderSeverity(v.Severity), v.RuleName, truncate(v.Message, 60), v.Path)
	}
	b.WriteString(t.String())
	return b.String()
}

func renderSeverity(s string) string {
	switch strings.ToUpper(s) {
	case types.SeverityError:
		return styleErr.Render(s)
	case types.SeverityWarn:
		return styleWarn.Render(s)
	default:
		return styleDim.Render(s)
	}
}

// ========================================
// Overview and artifacts
// ========================================

// RenderOverview renders one row per artifact followed by totals.
func RenderOverview(results []core.OverviewResult) string {
	t := newTable("Artifact", "Name", "Passed", "Failed", "Pass rate")
	for _, r := range results {
		switch {
		case r.Skipped:
			t.Row(r.Artifact.ID, displayName(r), "-", "-", styleDim.Render("revision"))
		case r.Err != nil:
			t.Row(r.Artifact.ID, displayName(r), "-", "-", styleErr.Render("error"))
		default:
			c := r.Summary.Counts
			t.Row(r.Artifact.ID, displayName(r),
				stylePassed.Render(fmt.Sprint(c.Passed)),
				styleFailed.Render(fmt.Sprint(c.Failed)),
				fmt.Sprintf("%.0f%%", core.PassRate(c.Passed, c.Total())))
		}
	}

	totals, failed := core.OverviewTotals(results)
	summary := fmt.Sprintf("%s, %s across %s",
		stylePassed.Render(fmt.Sprintf("%d passed", totals.Passed)),
		styleFailed.Render(fmt.Sprintf("%d failed", totals.Failed)),
		core.Pluralize(len(results), "artifact", "artifacts"))
	if failed > 0 {
		summary += styleErr.Render(fmt.Sprintf(" (%s could not be loaded)", core.Pluralize(failed, "artifact", "artifacts")))
	}
	return t.String() + "\n" + summary
}

func displayName(r core.OverviewResult) string {
	if r.Summary.ArtifactName != "" {
		return r.Summary.ArtifactName
	}
	return r.Artifact.Name
}

// RenderArtifacts lists tracked artifacts, marking the selected one.
func RenderArtifacts(artifacts []types.ArtifactRef, selected string) string {
	if len(artifacts) == 0 {
		return styleDim.Render("No artifacts tracked. Add one with 'apim-gov artifact add <id>'.")
	}
	t := newTable("", "ID", "Name", "Kind")
	for _, a := range artifacts {
		mark := ""
		if a.ID == selected {
			mark = "▶"
		}
		kind := "api"
		if a.Revision {
			kind = "revision"
		}
		t.Row(mark, a.ID, a.Name, kind)
	}
	return t.String()
}
