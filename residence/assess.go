package residence

import "github.com/warp/residence-engine/generic"

// =============================================================================
// ASSESSMENT - Everything a report needs, computed once
// =============================================================================

// TripLine is one travel as entered, with its own absence figure.
type TripLine struct {
	Travel     Travel
	AbsentDays int
}

// Assessment is the immutable result of one run. It holds plain values only;
// formatting belongs to the report package.
type Assessment struct {
	Record Record
	Policy Policy

	Accumulation Accumulation

	// Absence across the whole travel history, merged, without allowance.
	AbsentDays int

	Breakdown Breakdown

	// Eligibility charging all absence, and charging only excess absence.
	Raw     Projection
	Excused Projection

	// First entry + goal days: the date if nothing had ever been lost.
	GoalWithoutAbsence generic.Date

	// Latest permit expiry.
	RenewalDate generic.Date

	Trips []TripLine
}

// Eligible returns accumulated residence net of all absence.
func (a Assessment) Eligible() int {
	return a.Accumulation.Total - a.AbsentDays
}

// EligibleExcused returns accumulated residence net of excess absence.
func (a Assessment) EligibleExcused() int {
	return a.Accumulation.Total - a.Breakdown.TotalExcusedAbsence
}

// Assess runs every calculation for record under policy. It reads no clock
// and shares no state, so concurrent calls are safe.
func Assess(record Record, policy Policy) Assessment {
	acc := Accumulate(record)
	absent := AbsentDays(record.Travels)
	breakdown := YearlyBreakdown(record.FirstEntry, record.Today, record.Travels, policy.ExcuseDaysPerYear)

	trips := make([]TripLine, len(record.Travels))
	for i, t := range record.Travels {
		trips[i] = TripLine{Travel: t, AbsentDays: TripAbsence(t)}
	}

	return Assessment{
		Record:             record,
		Policy:             policy,
		Accumulation:       acc,
		AbsentDays:         absent,
		Breakdown:          breakdown,
		Raw:                Project(policy.GoalDays, acc.Total, absent, record.Today),
		Excused:            Project(policy.GoalDays, acc.Total, breakdown.TotalExcusedAbsence, record.Today),
		GoalWithoutAbsence: record.FirstEntry.AddDays(policy.GoalDays),
		RenewalDate:        RenewalDate(record.Permits),
		Trips:              trips,
	}
}
