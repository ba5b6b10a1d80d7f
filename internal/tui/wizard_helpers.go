package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/types"
)

// buildPolicyOptions lists catalog policies first, then migrated ones, each pre-checked
// when the API currently uses it. Values are the names stored on the API.
func buildPolicyOptions(sel types.SubscriptionSelection) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(sel.Selectable)+len(sel.Migrated))
	for _, p := range sel.Selectable {
		name := policyValue(p)
		options = append(options, huh.NewOption(policyOptionLabel(p), name).Selected(isSelected(sel.Selected, name)))
	}
	for _, name := range sel.Migrated {
		options = append(options, huh.NewOption(name+" (migrated)", name).Selected(isSelected(sel.Selected, name)))
	}
	return options
}

// preselected returns the API's policies that appear as form options.
func preselected(sel types.SubscriptionSelection) []string {
	var out []string
	for _, p := range sel.Selectable {
		if name := policyValue(p); isSelected(sel.Selected, name) {
			out = append(out, name)
		}
	}
	for _, name := range sel.Migrated {
		if isSelected(sel.Selected, name) {
			out = append(out, name)
		}
	}
	return out
}

// policyValue is the name stored on the API for a catalog entry.
func policyValue(p types.SubscriptionPolicy) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

func policyOptionLabel(p types.SubscriptionPolicy) string {
	label := policyValue(p)
	if p.Description != "" {
		label += " - " + truncate(p.Description, 60)
	}
	return label
}

func isSelected(selected []string, name string) bool {
	for _, s := range selected {
		if s == name {
			return true
		}
	}
	return false
}

func apiLabel(api types.APIDescriptor) string {
	if api.Version == "" {
		return api.Name
	}
	return fmt.Sprintf("%s %s", api.Name, api.Version)
}

// selectionDescription explains what happens when every policy is unchecked.
func selectionDescription(sel types.SubscriptionSelection, opts core.SubscriptionOptions) string {
	desc := "Space to toggle, Enter to confirm"
	if opts.ValidationDisablingAllowed && !opts.MutualSSLOnly && !opts.APIKeyEnabled {
		plan := types.DefaultSubscriptionlessPlan
		if opts.Async {
			plan = types.DefaultAsyncSubscriptionlessPlan
		}
		desc += fmt.Sprintf("\nLeaving all unchecked disables subscription validation (%s)", plan)
	}
	if len(sel.Migrated) > 0 {
		desc += fmt.Sprintf("\n%s not in the current catalog", core.Pluralize(len(sel.Migrated), "policy is", "policies are"))
	}
	return desc
}

func formatReadOnlySelection(sel types.SubscriptionSelection) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Subscription policies - "+apiLabel(sel.API)) + "\n")
	b.WriteString(styleDim.Render("Revisions are read-only") + "\n")
	if len(sel.Selected) == 0 {
		b.WriteString("(none)")
		return b.String()
	}
	b.WriteString(strings.Join(sel.Selected, "\n"))
	return b.String()
}

func sameSelection(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, s := range a {
		if !isSelected(b, s) {
			return false
		}
	}
	return true
}

// formatSelectionDiff renders "+ added" and "- removed" lines.
func formatSelectionDiff(prev, next []string) string {
	var lines []string
	for _, p := range next {
		if !isSelected(prev, p) {
			lines = append(lines, "+ "+p)
		}
	}
	for _, p := range prev {
		if !isSelected(next, p) {
			lines = append(lines, "- "+p)
		}
	}
	return strings.Join(lines, "\n")
}
