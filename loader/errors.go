/*
errors.go - Errors returned while reading applicant input

PURPOSE:
  Loaders reject bad input before it reaches the calculation. Every
  rejection is an *InputError that unwraps to ErrInvalidInput, so callers
  can branch with errors.Is and still show the file, line and field.

USAGE:

    rec, err := loader.LoadTravels("travels.csv")
    if errors.Is(err, loader.ErrInvalidInput) {
        // 400 / exit 2
    }

SEE ALSO:
  - generic/errors.go: Date and period sentinels wrapped by InputError
*/
package loader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is the sentinel for any malformed input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when an input file does not exist.
	ErrNotFound = errors.New("input file not found")
)

// InputError locates a rejection inside its source.
type InputError struct {
	Source string // file path or "request"
	Line   int    // 1-based, 0 when unknown
	Field  string // e.g. "permits[1].start", empty for whole-file problems
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

func inputErr(source string, line int, field, format string, args ...any) *InputError {
	return &InputError{Source: source, Line: line, Field: field, Reason: fmt.Sprintf(format, args...)}
}
