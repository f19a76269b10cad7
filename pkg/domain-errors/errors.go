// Package dErrors defines typed domain errors shared across modules.
//
// Services return these instead of raw errors so the transport layer can
// map outcomes to status codes without string matching, and so expected
// failures (validation, not found) stay distinguishable from
// infrastructure faults.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks caller-fixable input problems: missing fields,
	// unknown person references, duplicate submissions.
	CodeValidation Code = "validation"
	// CodeNotFound marks lookup failures on read paths.
	CodeNotFound Code = "not_found"
	// CodeConflict marks uniqueness violations on write paths.
	CodeConflict Code = "conflict"
	// CodeInternal marks persistence or infrastructure faults. The message
	// is safe to surface; the wrapped cause is not.
	CodeInternal Code = "internal"
	// CodeTimeout marks cancelled or deadline-exceeded operations.
	CodeTimeout Code = "timeout"
)

// Error carries a code, a caller-safe message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and caller-safe message to an underlying error.
// A nil err yields nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal for
// untyped errors so infrastructure faults never masquerade as expected
// outcomes.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message returns the caller-safe message from err. Untyped errors get a
// generic message so internals never leak to clients.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
