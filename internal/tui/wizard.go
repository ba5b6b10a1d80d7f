package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/EmundoT/apim-governance/internal/core"
	"github.com/EmundoT/apim-governance/internal/types"
)

var (
	colorAccent = lipgloss.Color("#7D56F4")
	colorPassed = lipgloss.Color("#2E7D32")
	colorFailed = lipgloss.Color("#C62828")
	colorWarn   = lipgloss.Color("#FFA500")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleErr     = lipgloss.NewStyle().Foreground(colorFailed)
	styleSuccess = lipgloss.NewStyle().Foreground(colorPassed)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleCard    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("238"))
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("aborted")

// --- SUBSCRIPTION WIZARD ---

// RunSubscriptionWizard shows the multi-select over selectable and migrated policies,
// pre-checked with the API's current selection, and returns the selection after replaying
// the user's changes through core.TogglePolicy. Revisions are shown read-only.
func RunSubscriptionWizard(sel types.SubscriptionSelection, opts core.SubscriptionOptions) ([]string, error) {
	if sel.API.IsRevision {
		fmt.Println(styleCard.Render(formatReadOnlySelection(sel)))
		return sel.Selected, nil
	}

	options := buildPolicyOptions(sel)
	if len(options) == 0 {
		PrintWarning("No Subscription Policies", "The backend returned no selectable policies for this API")
		return sel.Selected, nil
	}

	chosen := preselected(sel)
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(fmt.Sprintf("Subscription policies - %s", apiLabel(sel.API))).
			Description(selectionDescription(sel, opts)).
			Options(options...).
			Value(&chosen),
	)).Run()
	if err != nil {
		return nil, ErrAborted
	}

	return core.ApplySelection(sel.Selected, chosen, opts), nil
}

// ConfirmSelection asks whether to save next in place of prev. An unchanged selection is not saved.
func ConfirmSelection(prev, next []string) bool {
	if sameSelection(prev, next) {
		PrintInfo("No changes to save.")
		return false
	}
	var confirm bool
	err := huh.NewConfirm().
		Title("Save subscription policies?").
		Description(formatSelectionDiff(prev, next)).
		Value(&confirm).
		Affirmative("Save").
		Negative("Discard").
		Run()
	if err != nil {
		return false
	}
	return confirm
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PrintError displays an error message with styling to the terminal.
func PrintError(title, msg string) { fmt.Println(styleErr.Render("✖ " + title)); fmt.Println(msg) }

// PrintSuccess displays a success message with styling to the terminal.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintInfo displays an informational message to the terminal.
func PrintInfo(msg string) {
	fmt.Println(styleDim.Render(msg))
}

// PrintWarning displays a warning message with styling to the terminal.
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// StyleTitle applies title styling to the given text string.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// PrintHelp displays usage information for apim-gov commands.
func PrintHelp() {
	fmt.Println(styleTitle.Render("apim-gov"))
	fmt.Println("Governance compliance, policies and subscription settings from the terminal")
	fmt.Println("\nCommands:")
	fmt.Println("  init                Create .apim-gov/console.yml with defaults")
	fmt.Println("  config get <key>    Show a config value")
	fmt.Println("  config set <key> <value>")
	fmt.Println("                      Change a config value")
	fmt.Println("  artifact add <id> [--name <name>] [--revision]")
	fmt.Println("                      Track an artifact")
	fmt.Println("  artifact remove <id>")
	fmt.Println("  artifact select <id>")
	fmt.Println("                      Choose the artifact shown by watch")
	fmt.Println("  artifact list       Show tracked artifacts")
	fmt.Println("  compliance [options] <artifact-id>")
	fmt.Println("                      Show the compliance summary of an artifact")
	fmt.Println("    --revision        Treat the artifact as a revision (no evaluation)")
	fmt.Println("    --interactive     Browse tracked artifacts (n/p next/previous, r reload, q quit)")
	fmt.Println("  overview            Compliance of every tracked artifact")
	fmt.Println("  watch               Follow the selected artifact as console.yml changes")
	fmt.Println("  policies [--search <text>]")
	fmt.Println("                      List governance policies")
	fmt.Println("  delete-policy <id>  Delete a governance policy (asks first)")
	fmt.Println("  violations <artifact-id> <ruleset-id> [--severity ERROR|WARN|INFO]")
	fmt.Println("                      Show rule violations of one ruleset")
	fmt.Println("  subscription-policies <api-id>")
	fmt.Println("                      Edit the subscription policies of an API")
	fmt.Println("  completion <shell>  Generate shell completion script (bash/zsh/fish/powershell)")
	fmt.Println("  version             Show version information")
	fmt.Println("\nGlobal flags:")
	fmt.Println("  --json              Structured JSON output")
	fmt.Println("  --quiet, -q         Minimal output")
	fmt.Println("  --yes, -y           Auto-approve prompts")
	fmt.Println("  --verbose, -v       Debug logging to stderr")
	fmt.Println("\nExamples:")
	fmt.Println("  apim-gov init")
	fmt.Println("  apim-gov config set server.base_url https://apim.example.com/api/am")
	fmt.Println("  apim-gov artifact add 3f2a-petstore --name PetStore")
	fmt.Println("  apim-gov compliance 3f2a-petstore")
	fmt.Println("  apim-gov compliance --interactive")
	fmt.Println("  apim-gov overview --json")
	fmt.Println("  apim-gov policies --search owasp")
	fmt.Println("  apim-gov violations 3f2a-petstore rs-1 --severity ERROR")
	fmt.Println("  apim-gov subscription-policies 8c1d-orders")
	fmt.Println("  apim-gov completion bash > /etc/bash_completion.d/apim-gov")
	fmt.Println("\nEnvironment:")
	fmt.Println("  APIM_GOV_URL, APIM_GOV_TOKEN, APIM_GOV_TIMEOUT override console.yml")
}
