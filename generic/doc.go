/*
Package generic provides the domain-agnostic calendar and interval engine.

PURPOSE:
  This package knows nothing about permits or trips. It offers calendar days,
  closed day ranges and the interval algebra the residence package is built
  on: merging overlapping ranges and slicing time into anniversary years.

KEY CONCEPTS:
  - Date: A calendar day, always midnight UTC, parsed from YYYY-MM-DD
  - Period: A closed range [Start, End] of days
  - Spanner: Any labeled type that carries a Period (Travel, PermitEntry)
  - Window: A half-open anniversary year [Start, End)

DESIGN PRINCIPLES:
  1. Purity: Nothing here reads the clock; callers resolve today once at
     the edge and pass it down
  2. Day arithmetic only: No time of day, no zone offsets
  3. Immutability: Merges return new slices, inputs are never reordered

USAGE:
  trips := []generic.Period{
      {Start: generic.NewDate(2020, time.August, 10), End: generic.NewDate(2020, time.August, 25)},
      {Start: generic.NewDate(2020, time.August, 15), End: generic.NewDate(2020, time.August, 20)},
  }
  merged := generic.MergePeriods(trips) // one period, 10-25 August

SEE ALSO:
  - time.go: Date type and arithmetic
  - period.go: Period, MergeOverlapping, AnniversaryWindows
  - residence/: The domain built on this engine
*/
package generic
