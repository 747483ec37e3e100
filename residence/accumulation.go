package residence

import "github.com/warp/residence-engine/generic"

// =============================================================================
// ACCUMULATION - Residence days earned up to today
// =============================================================================

// Accumulation splits accumulated residence into its two sources.
type Accumulation struct {
	// Days between first entry and the earliest permit start.
	DaysWithoutPermit int

	// Days covered by permits, truncated at today.
	PermitDays int

	// DaysWithoutPermit + PermitDays. May exceed the goal.
	Total int
}

// Accumulate computes residence accumulated as of record.Today.
//
// Permits may arrive in any order and may overlap. They are merged first:
// the earliest start bounds the pre-permit period and overlapping renewals
// count once.
func Accumulate(record Record) Accumulation {
	if len(record.Permits) == 0 {
		return Accumulation{}
	}

	merged := generic.MergeOverlapping(record.Permits)

	withoutPermit := generic.DaysBetween(record.FirstEntry, merged[0].Start)

	permitDays := 0
	for _, p := range merged {
		effectiveEnd := generic.MinDate(p.End, record.Today)
		permitDays += max(0, generic.DaysBetween(p.Start, effectiveEnd))
	}

	return Accumulation{
		DaysWithoutPermit: withoutPermit,
		PermitDays:        permitDays,
		Total:             withoutPermit + permitDays,
	}
}

// RenewalDate returns the latest permit expiry, the date by which the permit
// must be renewed. The zero Date is returned for an empty list.
func RenewalDate(permits []PermitEntry) generic.Date {
	var latest generic.Date
	for i, p := range permits {
		if i == 0 || p.End.After(latest) {
			latest = p.End
		}
	}
	return latest
}
