package core

// OutputMode selects how a command prints its result.
type OutputMode int

const (
	OutputNormal OutputMode = iota // lipgloss tables and status bars
	OutputQuiet                    // errors only, through the exit code
	OutputJSON                     // one CLIResponse document on stdout
)

func (m OutputMode) String() string {
	switch m {
	case OutputQuiet:
		return "quiet"
	case OutputJSON:
		return "json"
	default:
		return "normal"
	}
}

// NonInteractiveFlags carries --yes, --quiet and --json into the UI callback.
// Yes answers every confirmation (policy delete, subscription save) with yes.
type NonInteractiveFlags struct {
	Yes  bool
	Mode OutputMode
}
