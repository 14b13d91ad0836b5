// Package errors provides structured error types for busstop.
//
// Errors carry a machine-readable [Code] so that callers can decide how to
// downgrade a failure without string matching:
//   - CONFIG_*: configuration file problems, downgraded to a run-level sentinel
//   - MALFORMED_RECORD: a single arrival prediction that cannot be parsed,
//     skipped without aborting the stop
//   - INVALID_*: bad stop identifiers or output formats, rejected before any
//     request is made
//
// Upstream API failures are not coded here. They are classified by
// integrations.ErrNetwork, integrations.ErrTimeout and
// httputil.ExhaustedError.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedRecord, "missing field %q", "lineName")
//	if errors.Is(err, errors.ErrCodeMalformedRecord) {
//	    // skip the record
//	}
//
//	err := errors.Wrap(errors.ErrCodeConfigInvalid, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidStopID Code = "INVALID_STOP_ID"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Configuration errors
	ErrCodeConfigSectionMissing Code = "CONFIG_SECTION_MISSING"
	ErrCodeConfigInvalid        Code = "CONFIG_INVALID"
	ErrCodeFileNotFound         Code = "FILE_NOT_FOUND"

	// Record errors
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
