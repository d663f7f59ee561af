// Package errors provides structured error types for the sochart library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages carrying a human-readable locator
//     (part name, task name, or kind fallback)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or configuration validation failures
//   - *_NOT_*: Cross-reference failures (axis not in coordinate, data not set)
//   - INTERNAL_*: Unexpected internal errors
//
// # Contract Errors
//
// Configuration mistakes (a chart missing data, a circular task dependency)
// are *Error values. Violations of the part serial protocol by a custom part
// implementation are *ContractError values: they indicate a bug in an
// extension rather than a data-configuration mistake and are deliberately a
// distinct type so callers can tell the two apart.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCircularDependency, "circular dependency at task %q", name)
//	if errors.Is(err, errors.ErrCodeCircularDependency) {
//	    // Handle scheduling error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Scheduling errors
	ErrCodeStartUnset         Code = "PROJECT_START_UNSET"
	ErrCodeCircularDependency Code = "CIRCULAR_DEPENDENCY"

	// Cross-reference errors raised during an update cycle
	ErrCodeNoCoordinate        Code = "COORDINATE_NOT_SET"
	ErrCodeAxisNotInCoordinate Code = "AXIS_NOT_IN_COORDINATE"
	ErrCodeDuplicateAxis       Code = "DUPLICATE_AXIS"
	ErrCodeDataNotSet          Code = "DATA_NOT_SET"
	ErrCodeDataNotSent         Code = "DATA_NOT_SENT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// ContractError reports a violation of the part serial protocol by a part
// implementation: renumbering a part whose serial was already assigned within
// the same update cycle, or reporting an assigned serial before assignment.
// It indicates a programming bug in an extension, not a configuration mistake.
type ContractError struct {
	Part    string // Name or kind of the offending part
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("part contract violation [%s]: %s", e.Part, e.Message)
	}
	return fmt.Sprintf("part contract violation: %s", e.Message)
}

// Contract creates a ContractError for the named part.
func Contract(part, format string, args ...any) *ContractError {
	return &ContractError{Part: part, Message: fmt.Sprintf(format, args...)}
}

// IsContract reports whether err is (or wraps) a ContractError.
func IsContract(err error) bool {
	var e *ContractError
	return errors.As(err, &e)
}
