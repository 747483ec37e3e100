package residence

import "github.com/warp/residence-engine/generic"

// TripAbsence returns the days strictly between departure and return.
// Same-day and next-day returns, and inverted ranges, count as zero.
func TripAbsence(t Travel) int {
	return periodAbsence(t.Period)
}

func periodAbsence(p generic.Period) int {
	return max(0, p.Days()-1)
}

// AbsentDays totals absence across trips. Overlapping trips are merged first
// so a day abroad is never counted twice.
func AbsentDays(travels []Travel) int {
	total := 0
	for _, t := range generic.MergeOverlapping(travels) {
		total += TripAbsence(t)
	}
	return total
}
