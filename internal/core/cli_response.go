package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// CLIResponse is the structured JSON output of every command run with --json.
//
// Schema:
//
//	{
//	  "success": true|false,
//	  "data": { ... },          // Command-specific payload (omitted on error)
//	  "message": "Deleted policy p1",
//	  "warnings": ["Config Reload Failed: ..."],
//	  "error": {                 // Present only on failure
//	    "code": "FETCH_FAILED",
//	    "title": "Compliance",
//	    "message": "Human-readable description"
//	  }
//	}
type CLIResponse struct {
	Success  bool            `json:"success"`
	Data     interface{}     `json:"data,omitempty"`
	Message  string          `json:"message,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    *CLIErrorDetail `json:"error,omitempty"`
}

// CLIErrorDetail contains machine-readable error code and human-readable message.
type CLIErrorDetail struct {
	Code    string `json:"code"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// WriteCLIResponse encodes resp as indented JSON.
func WriteCLIResponse(w io.Writer, resp CLIResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// CLI exit codes.
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitNotFound         = 2
	ExitInvalidArguments = 3
	ExitDataShape        = 4
	ExitFetchFailed      = 5
	ExitCancelled        = 130
)

// CLI error codes for structured JSON error responses.
const (
	ErrCodeFetchFailed      = "FETCH_FAILED"
	ErrCodeDataShape        = "DATA_SHAPE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeCancelled        = "CANCELLED"
	ErrCodeInvalidArguments = "INVALID_ARGUMENTS"
	ErrCodeNotInitialized   = "NOT_INITIALIZED"
	ErrCodeConfigError      = "CONFIG_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidKey       = "INVALID_KEY"
)

// EmitCLISuccess writes a successful CLIResponse as JSON to stdout.
func EmitCLISuccess(data interface{}) {
	_ = WriteCLIResponse(os.Stdout, CLIResponse{Success: true, Data: data}) //nolint:errcheck
}

// EmitCLIError writes an error CLIResponse as JSON to stdout.
// Returns the exit code for the caller to use with os.Exit.
func EmitCLIError(code string, message string, exitCode int) int {
	_ = WriteCLIResponse(os.Stdout, CLIResponse{ //nolint:errcheck
		Error: &CLIErrorDetail{Code: code, Message: message},
	})
	return exitCode
}

// CLIExitCodeForError maps structured error types to CLI exit codes.
// Not-found and data-shape checks run before the FetchError check since both can wrap one.
func CLIExitCodeForError(err error) int {
	switch {
	case IsCancelled(err):
		return ExitCancelled
	case isNotFound(err):
		return ExitNotFound
	case IsDataShapeError(err):
		return ExitDataShape
	case IsConfigError(err):
		return ExitInvalidArguments
	case IsFetchError(err):
		return ExitFetchFailed
	default:
		return ExitGeneralError
	}
}

// CLIErrorCodeForError maps structured error types to CLI error code strings.
func CLIErrorCodeForError(err error) string {
	switch {
	case IsCancelled(err):
		return ErrCodeCancelled
	case isNotFound(err):
		return ErrCodeNotFound
	case IsDataShapeError(err):
		return ErrCodeDataShape
	case IsConfigError(err):
		return ErrCodeConfigError
	case errors.Is(err, ErrNotInitialized):
		return ErrCodeNotInitialized
	case IsFetchError(err):
		return ErrCodeFetchFailed
	default:
		return ErrCodeInternalError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrPolicyNotFound) || errors.Is(err, ErrAPINotFound)
}

// FormatCLIMessage formats a simple text message for non-JSON CLI output.
func FormatCLIMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
