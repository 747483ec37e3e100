package generic

import "sort"

// =============================================================================
// PERIOD - Closed range of calendar days
// =============================================================================

// Period is the closed range [Start, End]. Loaders guarantee End >= Start;
// code in this package does not re-check it.
//
// Examples:
//   - A trip abroad: departure day - return day
//   - A residence permit: issue day - expiry day
type Period struct {
	Start Date
	End   Date
}

// NewPeriod validates the range invariant.
func NewPeriod(start, end Date) (Period, error) {
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// Days returns the whole days from Start to End (0 for a single-day period).
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// INTERVAL MERGE - Collapse overlapping or touching ranges
// =============================================================================

// Spanner is anything that carries a Period and can be rebuilt with a wider one.
// Domain types implement it so the merge keeps their labels.
//
//	func (t Travel) Span() generic.Period               { return t.Period }
//	func (t Travel) WithSpan(p generic.Period) Travel   { t.Period = p; return t }
type Spanner[T any] interface {
	Span() Period
	WithSpan(Period) T
}

// MergeOverlapping returns the maximal disjoint ranges covering items, sorted
// by start. A range whose start is on or before the running end joins it, so
// touching ranges merge. Each result keeps the label of the earliest-starting
// item of its chain. The input slice is left untouched.
func MergeOverlapping[T Spanner[T]](items []T) []T {
	if len(items) == 0 {
		return []T{}
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span().Start.Before(sorted[j].Span().Start)
	})

	merged := make([]T, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		cur, nxt := current.Span(), next.Span()
		if nxt.Start.BeforeOrEqual(cur.End) {
			current = current.WithSpan(Period{Start: cur.Start, End: MaxDate(cur.End, nxt.End)})
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// Span and WithSpan let bare periods go through MergeOverlapping.
func (p Period) Span() Period             { return p }
func (p Period) WithSpan(s Period) Period { return s }

// MergePeriods is MergeOverlapping for unlabeled periods.
func MergePeriods(periods []Period) []Period {
	return MergeOverlapping(periods)
}

// =============================================================================
// ANNIVERSARY WINDOWS - Consecutive years anchored on a date
// =============================================================================

// Window is the half-open year [Start, End) numbered from 1.
type Window struct {
	Index int
	Start Date
	End   Date
}

// Contains reports whether d falls in [Start, End).
func (w Window) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.Before(w.End)
}

// AnniversaryWindows partitions time from anchor into yearly windows. Every
// window whose end is strictly before until is returned, followed by the
// window in progress, which is always present even when until <= anchor.
//
// Window n runs from anchor+(n-1) years to anchor+n years. Both bounds are
// computed from the anchor so a 29 February anchor does not drift.
func AnniversaryWindows(anchor, until Date) []Window {
	var windows []Window
	n := 1
	for {
		w := Window{Index: n, Start: anchor.AddYears(n - 1), End: anchor.AddYears(n)}
		windows = append(windows, w)
		if !w.End.Before(until) {
			return windows
		}
		n++
	}
}
