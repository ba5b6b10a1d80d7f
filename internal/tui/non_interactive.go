package tui

import (
	"fmt"
	"os"

	"github.com/EmundoT/apim-governance/internal/core"
)

// NonInteractiveTUICallback serves scripts and pipes. Messages go to stderr as plain text, or
// into a single CLIResponse on stdout with --json. Quiet mode prints nothing.
type NonInteractiveTUICallback struct {
	flags core.NonInteractiveFlags
}

// NewNonInteractiveTUICallback creates a callback for the given --yes/--quiet/--json flags.
func NewNonInteractiveTUICallback(flags core.NonInteractiveFlags) *NonInteractiveTUICallback {
	return &NonInteractiveTUICallback{flags: flags}
}

func (n *NonInteractiveTUICallback) ShowError(title, message string) {
	switch n.flags.Mode {
	case core.OutputJSON:
		_ = n.Respond(core.CLIResponse{
			Error: &core.CLIErrorDetail{Code: core.ErrCodeInternalError, Title: title, Message: message},
		})
	case core.OutputNormal:
		fmt.Fprintf(os.Stderr, "Error: %s - %s\n", title, message)
	}
}

func (n *NonInteractiveTUICallback) ShowSuccess(message string) {
	switch n.flags.Mode {
	case core.OutputJSON:
		_ = n.Respond(core.CLIResponse{Success: true, Message: message})
	case core.OutputNormal:
		fmt.Println(message)
	}
}

// ShowWarning reports a problem that does not fail the command, such as a config file
// that failed to reload under watch.
func (n *NonInteractiveTUICallback) ShowWarning(title, message string) {
	switch n.flags.Mode {
	case core.OutputJSON:
		_ = n.Respond(core.CLIResponse{Success: true, Warnings: []string{title + ": " + message}})
	case core.OutputNormal:
		fmt.Fprintf(os.Stderr, "Warning: %s - %s\n", title, message)
	}
}

// AskConfirmation cannot prompt, so only --yes approves a delete or save.
func (n *NonInteractiveTUICallback) AskConfirmation(title, message string) bool {
	if n.flags.Yes {
		return true
	}
	n.ShowError("Interactive Prompt Required",
		fmt.Sprintf("%s: %s\nUse --yes to auto-approve", title, message))
	return false
}

// EmitData writes a command result: the CLIResponse envelope in JSON mode, nothing otherwise.
// It reports whether anything was written so callers can skip their styled rendering.
func (n *NonInteractiveTUICallback) EmitData(data interface{}) bool {
	if n.flags.Mode != core.OutputJSON {
		return false
	}
	core.EmitCLISuccess(data)
	return true
}

// StyleTitle leaves titles plain so piped output carries no escape codes.
func (n *NonInteractiveTUICallback) StyleTitle(title string) string {
	return title
}

func (n *NonInteractiveTUICallback) GetOutputMode() core.OutputMode {
	return n.flags.Mode
}

func (n *NonInteractiveTUICallback) IsAutoApprove() bool {
	return n.flags.Yes
}

// Respond writes resp to stdout.
func (n *NonInteractiveTUICallback) Respond(resp core.CLIResponse) error {
	return core.WriteCLIResponse(os.Stdout, resp)
}
