// Package errors provides structured error types for shiftgraph.
//
// Every failure raised by the graph store, the transition system and the
// finalizer carries a machine-readable [Code], so callers processing many
// passages can decide per passage whether to skip or abort:
//   - FROZEN_GRAPH: a mutation was attempted on a frozen passage
//   - DUPLICATE_ID: a layer, node or edge identifier is already taken
//   - MISSING_ELEMENT: a lookup or removal named something that is not there
//   - MALFORMED_TRANSITION: an action was applied outside its precondition
//   - MALFORMED_GRAPH: the transient graph cannot be materialized
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingElement, "layer %q not found", id)
//	if errors.Is(err, errors.ErrCodeMissingElement) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph store errors
	ErrCodeFrozenGraph    Code = "FROZEN_GRAPH"
	ErrCodeDuplicateID    Code = "DUPLICATE_ID"
	ErrCodeMissingElement Code = "MISSING_ELEMENT"

	// Construction errors
	ErrCodeMalformedTransition Code = "MALFORMED_TRANSITION"
	ErrCodeMalformedGraph      Code = "MALFORMED_GRAPH"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

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

// Frozen reports a mutation attempted on an immutable passage.
func Frozen(what string) *Error {
	return New(ErrCodeFrozenGraph, "cannot modify %s: passage is frozen", what)
}

// Duplicate reports an identifier collision.
func Duplicate(kind, id string) *Error {
	return New(ErrCodeDuplicateID, "%s %q already exists", kind, id)
}

// Missing reports a lookup or removal of an absent element.
func Missing(kind, id string) *Error {
	return New(ErrCodeMissingElement, "%s %q not found", kind, id)
}
