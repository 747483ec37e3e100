// Package residence implements reckonable residence arithmetic.
// It uses the generic interval engine with residence specific record types:
// trips abroad, residence permits, and the yearly excused-absence allowance.
package residence

import "github.com/warp/residence-engine/generic"

// =============================================================================
// POLICY - The two tunable constants of the modeled rule
// =============================================================================

const (
	// DefaultGoalDays is five years of reckonable residence.
	DefaultGoalDays = 1826

	// DefaultExcuseDaysPerYear is the absence allowed per anniversary year
	// before it counts against residence.
	DefaultExcuseDaysPerYear = 70
)

// Policy carries the eligibility threshold and the yearly allowance.
type Policy struct {
	GoalDays          int
	ExcuseDaysPerYear int
}

// DefaultPolicy returns the policy of the modeled jurisdiction.
func DefaultPolicy() Policy {
	return Policy{GoalDays: DefaultGoalDays, ExcuseDaysPerYear: DefaultExcuseDaysPerYear}
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// Travel is a trip abroad. Start is the departure day and End the return day;
// both count as days present, only the days strictly between are absent.
type Travel struct {
	generic.Period
	Location string // display only
}

func (t Travel) Span() generic.Period { return t.Period }
func (t Travel) WithSpan(p generic.Period) Travel {
	t.Period = p
	return t
}

// PermitEntry is a span during which a residence permit was valid.
type PermitEntry struct {
	generic.Period
	Name string // display only
}

func (e PermitEntry) Span() generic.Period { return e.Period }
func (e PermitEntry) WithSpan(p generic.Period) PermitEntry {
	e.Period = p
	return e
}

// Compile-time checks that both record types merge through the generic engine
var (
	_ generic.Spanner[Travel]      = Travel{}
	_ generic.Spanner[PermitEntry] = PermitEntry{}
)

// Record is everything known about one applicant for one run. It is built
// once by a loader, read by Assess, and discarded.
type Record struct {
	FirstEntry generic.Date
	Permits    []PermitEntry // non-empty, any order
	Travels    []Travel
	Today      generic.Date
}
