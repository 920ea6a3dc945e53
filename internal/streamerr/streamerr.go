// Package streamerr implements the stable error-kind taxonomy shared by
// every conversion and decoding failure across the event-stream core: a
// typed error carrying a category plus a message and an optional wrapped
// cause, built around github.com/pkg/errors for stack-preserving wrapping
// instead of bare fmt.Errorf chains.
package streamerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the stable category of a stream error, surfaced unchanged across
// every call site so callers can branch on it instead of string-matching.
type Kind string

const (
	NotString          Kind = "not_string"
	NotStringView       Kind = "not_string_view"
	NotByteString       Kind = "not_byte_string"
	NotByteStringView   Kind = "not_byte_string_view"
	NotInteger          Kind = "not_integer"
	NotDouble           Kind = "not_double"
	NotBool             Kind = "not_bool"
	NotVector           Kind = "not_vector"
	NotDateTime         Kind = "not_date_time"
	DivideByZero        Kind = "arithmetic/divide_by_zero"
	ParseError          Kind = "parse_error"
	UnsupportedVersion  Kind = "unsupported_version"
)

// StreamError carries a stable Kind, a human-readable message, and an
// optional wrapped cause. It is the code-style return value every fallible
// operation in the core produces.
type StreamError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *StreamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *StreamError) Unwrap() error { return e.cause }

// New creates a StreamError with no wrapped cause, stamping a stack trace
// via errors.WithStack so the point of origin survives propagation through
// the cursor.
func New(kind Kind, message string) error {
	return errors.WithStack(&StreamError{Kind: kind, Message: message})
}

// Wrap attaches kind and message to an existing error, keeping its root
// cause (errors.Cause) as the cause and adding a stack frame at the wrap site.
func Wrap(kind Kind, message string, cause error) error {
	if cause == nil {
		return New(kind, message)
	}
	return errors.WithStack(&StreamError{Kind: kind, Message: message, cause: errors.Cause(cause)})
}

// As reports whether err is, or wraps, a *StreamError, returning it.
func As(err error) (*StreamError, bool) {
	var se *StreamError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// KindOf returns the Kind of err if it is a *StreamError, or "" otherwise.
func KindOf(err error) Kind {
	if se, ok := As(err); ok {
		return se.Kind
	}
	return ""
}

// Must returns v, or panics with err if it is non-nil. It is
// the throwing-style wrapper alongside every (T, error) function: Go has
// no exceptions, so "throw" here means panic with the *StreamError intact.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
