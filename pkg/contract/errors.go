package contract

import (
	"errors"
	"fmt"
)

// Error codes for structured error reporting.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeTransport  = "TRANSPORT_ERROR"
	ErrCodeExecution  = "EXECUTION_ERROR"
	ErrCodeConfig     = "CONFIG_ERROR"
)

// Error is the structured error type shared by the contract layer, the
// remote callers and the pipeline.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Tool    string            `json:"tool,omitempty"`
	Issues  []ValidationIssue `json:"issues,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
	Cause   error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithTool attaches the remote tool name the error relates to.
func (e *Error) WithTool(tool string) *Error {
	e.Tool = tool
	return e
}

// WithCause attaches an underlying cause.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Code returns the code of the first *Error in err's chain, or "".
func Code(err error) string {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return ""
}

// IsValidation reports whether err is a shape validation failure.
func IsValidation(err error) bool {
	return Code(err) == ErrCodeValidation
}

// IsTransport reports whether err is a remote call failure.
func IsTransport(err error) bool {
	return Code(err) == ErrCodeTransport
}

// Issues returns the validation issues carried by err, if any.
func Issues(err error) []ValidationIssue {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Issues
	}
	return nil
}
