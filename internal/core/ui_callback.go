package core

// UICallback is how services report to the person (or script) running apim-gov.
// Services call it for delete confirmations, watch reload warnings and results.
type UICallback interface {
	ShowError(title, message string)
	ShowSuccess(message string)
	ShowWarning(title, message string)
	AskConfirmation(title, message string) bool
	StyleTitle(title string) string

	GetOutputMode() OutputMode
	IsAutoApprove() bool
	// Respond writes resp as the command's JSON document; interactive callbacks ignore it.
	Respond(resp CLIResponse) error
}

// ProgressTracker reports progress of a multi-step operation.
type ProgressTracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

// SilentUICallback is a no-op implementation (for testing/CI)
type SilentUICallback struct{}

func (s *SilentUICallback) ShowError(_, _ string)            {}
func (s *SilentUICallback) ShowSuccess(_ string)             {}
func (s *SilentUICallback) ShowWarning(_, _ string)          {}
func (s *SilentUICallback) AskConfirmation(_, _ string) bool { return false }
func (s *SilentUICallback) StyleTitle(title string) string   { return title }
func (s *SilentUICallback) GetOutputMode() OutputMode        { return OutputNormal }
func (s *SilentUICallback) IsAutoApprove() bool              { return false }
func (s *SilentUICallback) Respond(_ CLIResponse) error      { return nil }

// noopProgress is used when the caller passes no tracker.
type noopProgress struct{}

func (noopProgress) Increment(string) {}
func (noopProgress) SetTotal(int)     {}
func (noopProgress) Complete()        {}
func (noopProgress) Fail(error)       {}
