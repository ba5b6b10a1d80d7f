package core

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrNotInitialized indicates the config directory doesn't exist
	ErrNotInitialized = errors.New("config directory not found. Run 'apim-gov init' first")

	// ErrPolicyNotFound indicates the backend has no policy with the requested id
	ErrPolicyNotFound = errors.New("governance policy not found")

	// ErrAPINotFound indicates the publisher backend has no API with the requested id
	ErrAPINotFound = errors.New("api not found")
)

// FetchError is a transport or backend failure, including cancellation.
type FetchError struct {
	Op         string // client operation, e.g. "get compliance"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a FetchError.
func NewFetchError(op, url string, status int, err error) *FetchError {
	return &FetchError{Op: op, URL: url, StatusCode: status, Err: err}
}

// IsFetchError reports whether err is or wraps a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsCancelled reports whether err came from an aborted request.
// A deadline expiry is a genuine failure, not a cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// DataShapeError reports a response that does not match the governance data contract.
type DataShapeError struct {
	Field  string // JSON path of the offending field, e.g. "governedPolicies[1].rulesetValidationResults[0].id"
	Reason string
	Err    error // decode error, if any
}

func (e *DataShapeError) Error() string {
	msg := fmt.Sprintf("malformed compliance data: %s %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

// NewDataShapeError creates a DataShapeError for field.
func NewDataShapeError(field, reason string) *DataShapeError {
	return &DataShapeError{Field: field, Reason: reason}
}

// IsDataShapeError reports whether err is or wraps a DataShapeError.
func IsDataShapeError(err error) bool {
	var de *DataShapeError
	return errors.As(err, &de)
}

// ConfigError reports an invalid console.yml value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Error: invalid %s\nContext: %s\nFix: Edit %s or set the matching APIM_GOV_* environment variable", e.Field, e.Message, ConfigPath)
}

// NewConfigError creates a ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
