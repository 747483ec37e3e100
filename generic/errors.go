/*
errors.go - Centralized error types for the generic engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The interval engine itself never fails; these sentinels are for the
  collaborators that build Dates and Periods from untrusted text.

USAGE:
  Callers wrap with context and test with errors.Is:

    if errors.Is(err, generic.ErrInvalidPeriod) {
        return &loader.InputError{...}
    }

SEE ALSO:
  - time.go: ParseDate returns ErrInvalidDate
  - period.go: NewPeriod returns ErrInvalidPeriod
  - loader/errors.go: Wraps these errors with file and line context
*/
package generic

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date is not a strict YYYY-MM-DD value.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end date before start date")
)

// IsClientError returns true if the error is due to invalid input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPeriod)
}
