/*
projection.go - Earliest eligible application date

PURPOSE:
  Answers "when can I apply?" given what has been accumulated and what has
  been lost to absence. Mirrors the balance projection of a leave system:
  the goal is the entitlement, accumulated residence the accrual, absence
  the consumption.

FORMULA:
  eligible  = accumulated - absence
  daysLeft  = goal - eligible           (negative once the goal is passed)
  apply on  = today + daysLeft          (in the past when already eligible)
  critical  = apply on - 1 year         (absence in this year matters most)

RAW vs CLAMPED:
  The raw value is kept so callers can tell how far past the goal they are.
  The clamped value floors at zero for display.

SEE ALSO:
  - assess.go: Runs the projection with raw and with excused absence
*/
package residence

import (
	"github.com/shopspring/decimal"
	"github.com/warp/residence-engine/generic"
)

// DaysLeftResult is the days still needed in raw and display form.
type DaysLeftResult struct {
	Raw     int
	Clamped int
}

// DaysLeft computes goal - (accumulated - absence).
func DaysLeft(goal, accumulated, absence int) DaysLeftResult {
	raw := goal - (accumulated - absence)
	return DaysLeftResult{Raw: raw, Clamped: max(0, raw)}
}

// Projection is the eligibility outlook under one absence total.
type Projection struct {
	Absence             int
	DaysLeft            DaysLeftResult
	EarliestApplication generic.Date
	CriticalYearStart   generic.Date
}

// AlreadyEligible reports whether the goal has been reached.
func (p Projection) AlreadyEligible() bool {
	return p.DaysLeft.Raw <= 0
}

// Project derives the earliest application date. The raw days left are added
// to today unclamped, so an applicant past the goal gets a date in the past.
func Project(goal, accumulated, absence int, today generic.Date) Projection {
	left := DaysLeft(goal, accumulated, absence)
	apply := today.AddDays(left.Raw)
	return Projection{
		Absence:             absence,
		DaysLeft:            left,
		EarliestApplication: apply,
		CriticalYearStart:   apply.AddYears(-1),
	}
}

var hundred = decimal.NewFromInt(100)

// Progress returns the share of the goal reached as a percentage rounded to
// one decimal place, bounded to [0, 100].
func Progress(goal, eligible int) decimal.Decimal {
	if goal <= 0 {
		return hundred
	}
	pct := decimal.NewFromInt(int64(eligible)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(goal))).
		Round(1)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
