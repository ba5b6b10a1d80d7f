// Package tui renders apim-gov output and hosts its interactive screens and prompts.
package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/EmundoT/apim-governance/internal/core"
)

// TUICallback is the callback for a person at a terminal: lipgloss messages and huh prompts.
//
//nolint:revive // Name TUICallback is intentional and descriptive
type TUICallback struct{}

// NewTUICallback creates the interactive callback.
func NewTUICallback() *TUICallback {
	return &TUICallback{}
}

func (t *TUICallback) ShowError(title, message string) {
	PrintError(title, message)
}

func (t *TUICallback) ShowSuccess(message string) {
	PrintSuccess(message)
}

func (t *TUICallback) ShowWarning(title, message string) {
	PrintWarning(title, message)
}

// AskConfirmation asks before a policy delete or subscription save. Aborting the prompt
// (esc, ctrl+c) counts as no.
func (t *TUICallback) AskConfirmation(title, message string) bool {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Description(message).
		Value(&confirm).
		Affirmative("Yes").
		Negative("No").
		Run()
	if err != nil {
		return false
	}
	return confirm
}

func (t *TUICallback) StyleTitle(title string) string {
	return StyleTitle(title)
}

// GetOutputMode is always normal: --quiet and --json select the non-interactive callback.
func (t *TUICallback) GetOutputMode() core.OutputMode {
	return core.OutputNormal
}

func (t *TUICallback) IsAutoApprove() bool {
	return false
}

// Respond does nothing; results are rendered as tables instead.
func (t *TUICallback) Respond(_ core.CLIResponse) error {
	return nil
}
