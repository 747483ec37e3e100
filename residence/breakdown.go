/*
breakdown.go - Year-by-year absence with the excused allowance

PURPOSE:
  Absence is not charged in full. Each anniversary year since first entry
  carries a fixed allowance (70 days by default); only absence above it
  counts against residence.

WINDOWS:
  Year n runs from FirstEntry+(n-1)y up to, not including, FirstEntry+n y.
  Every completed year is listed, then the year in progress, which is always
  present even if barely started.

ATTRIBUTION:
  A trip belongs to the year containing its RETURN day. A trip that
  straddles an anniversary is charged wholly to the later year.

WHY TWO TOTALS:
  The allowance is applied per year, not globally, so
  TotalExcusedAbsence != max(0, AbsentDays - cap*years) in general.
  Absence spread evenly benefits more than absence concentrated in one year.

SEE ALSO:
  - generic/period.go: AnniversaryWindows
  - absence.go: AbsentDays used per window
*/
package residence

import "github.com/warp/residence-engine/generic"

// YearRow is the absence summary for one anniversary year.
type YearRow struct {
	Index             int
	WindowStart       generic.Date
	WindowEnd         generic.Date // exclusive
	RawAbsentDays     int
	ExcusedAbsentDays int  // absence above the allowance
	Current           bool // the year in progress
}

// Breakdown is the full per-year table plus its totals.
type Breakdown struct {
	Rows []YearRow

	// Sum of RawAbsentDays over all rows. Trips returning before first entry
	// or after the current year are in no row.
	TotalRawAbsence int

	// Sum of ExcusedAbsentDays over all rows, including the current one.
	TotalExcusedAbsence int

	// Allowance left in the current year. Negative once exceeded.
	RemainingAllowance int
}

// YearlyBreakdown splits travels into anniversary years from firstEntry and
// applies excuseCap to each year independently.
func YearlyBreakdown(firstEntry, today generic.Date, travels []Travel, excuseCap int) Breakdown {
	windows := generic.AnniversaryWindows(firstEntry, today)

	b := Breakdown{Rows: make([]YearRow, 0, len(windows))}
	for i, w := range windows {
		raw := AbsentDays(returnedWithin(travels, w))
		row := YearRow{
			Index:             w.Index,
			WindowStart:       w.Start,
			WindowEnd:         w.End,
			RawAbsentDays:     raw,
			ExcusedAbsentDays: max(0, raw-excuseCap),
			Current:           i == len(windows)-1,
		}
		b.Rows = append(b.Rows, row)
		b.TotalRawAbsence += row.RawAbsentDays
		b.TotalExcusedAbsence += row.ExcusedAbsentDays
		if row.Current {
			b.RemainingAllowance = excuseCap - raw
		}
	}
	return b
}

// CurrentRow returns the year in progress.
func (b Breakdown) CurrentRow() YearRow {
	if len(b.Rows) == 0 {
		return YearRow{}
	}
	return b.Rows[len(b.Rows)-1]
}

func returnedWithin(travels []Travel, w generic.Window) []Travel {
	var in []Travel
	for _, t := range travels {
		if w.Contains(t.End) {
			in = append(in, t)
		}
	}
	return in
}
