/*
markdown.go - Reckonable residence report

PURPOSE:
  Turns a residence.Assessment into the markdown document the applicant
  keeps. No arithmetic happens here beyond choosing what to print; every
  figure comes from the assessment.

SECTIONS:
  1. Header:      title, generation date, optional report ID
  2. Permits:     as entered, with their validity
  3. Travel:      as entered, with absent days per trip
  4. Yearly:      anniversary years with raw and excess absence
  5. Summary:     accumulated, absent, days left (raw and excused)
  6. Key Dates:   goal without absence, critical years, application dates

ESCAPING:
  Permit names and trip locations are user text and go through
  EscapeMarkdown before landing in a table cell.

SEE ALSO:
  - residence/assess.go: Produces the Assessment
  - cmd/reckoner: Writes the document to FileName(today)
*/
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/residence"
)

// DisplayLayout is how dates appear in the report.
const DisplayLayout = "02 January 2006"

// Document is a rendered report's input.
type Document struct {
	Assessment  residence.Assessment
	GeneratedOn generic.Date
	ReportID    string
}

// FileName returns the dated output file name for a report generated on day.
func FileName(day generic.Date) string {
	return day.String() + "_reckonable_residence_output.md"
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`#`, `\#`,
	`!`, `\!`,
)

// EscapeMarkdown neutralises characters that would break a table cell or be
// read as markup.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func display(d generic.Date) string {
	return d.Format(DisplayLayout)
}

// Render builds the markdown report.
func Render(doc Document) string {
	a := doc.Assessment
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# Reckonable Residence Report")
	line("")
	line("**Generated:** %s", display(doc.GeneratedOn))
	if doc.ReportID != "" {
		line("")
		line("**Report ID:** %s", EscapeMarkdown(doc.ReportID))
	}
	line("")

	line("## Permit Entries")
	line("")
	line("| Name | Start | End |")
	line("|------|-------|-----|")
	for _, p := range a.Record.Permits {
		line("| %s | %s | %s |", EscapeMarkdown(p.Name), display(p.Start), display(p.End))
	}
	line("")

	line("## Travel History")
	line("")
	line("| Location | Departed | Returned | Days |")
	line("|----------|----------|----------|------|")
	for _, t := range a.Trips {
		line("| %s | %s | %s | %d |", EscapeMarkdown(t.Travel.Location), display(t.Travel.Start), display(t.Travel.End), t.AbsentDays)
	}
	line("")

	line("## Year-by-Year Absence Breakdown")
	line("")
	line("| Year | Period | Absent Days | After Excuse (%dd) |", a.Policy.ExcuseDaysPerYear)
	line("|------|--------|-------------|-------------------------------|")
	for _, row := range a.Breakdown.Rows {
		label := strconv.Itoa(row.Index)
		if row.Current {
			label += " (current)"
		}
		line("| %s | %s - %s | %d | %d |", label, display(row.WindowStart), display(row.WindowEnd), row.RawAbsentDays, row.ExcusedAbsentDays)
	}
	line("")
	line("**Remaining leave allowance this year:** %d days", a.Breakdown.RemainingAllowance)
	line("")

	line("## Summary")
	line("")
	line("| Metric | Value |")
	line("|--------|-------|")
	line("| Goal | %d days |", a.Policy.GoalDays)
	line("| Days Accumulated | %d |", a.Accumulation.Total)
	line("| Days without Permit | %d |", a.Accumulation.DaysWithoutPermit)
	line("| Permit Days | %d |", a.Accumulation.PermitDays)
	line("| Total Absent Days | %d |", a.AbsentDays)
	line("| Total Absent (after excuses) | %d |", a.Breakdown.TotalExcusedAbsence)
	line("| Days Left | %d |", a.Raw.DaysLeft.Raw)
	line("| Days Left (with excuses) | %d |", a.Excused.DaysLeft.Raw)
	line("| Progress | %s%% |", residence.Progress(a.Policy.GoalDays, a.Eligible()).StringFixed(1))
	line("| Progress (with excuses) | %s%% |", residence.Progress(a.Policy.GoalDays, a.EligibleExcused()).StringFixed(1))
	line("")

	line("## Key Dates")
	line("")
	line("| | Date |")
	line("|--|------|")
	line("| Goal without any absence | %s |", display(a.GoalWithoutAbsence))
	keyDates(line, "", a.Raw)
	keyDates(line, " (with excuses)", a.Excused)
	line("| Permit Renewal Date | %s |", display(a.RenewalDate))

	return b.String()
}

func keyDates(line func(string, ...any), suffix string, p residence.Projection) {
	if p.AlreadyEligible() {
		line("| Critical Year Starts%s | - |", suffix)
		line("| **Earliest Application Date%s** | **Already eligible (since %s)** |", suffix, display(p.EarliestApplication))
		return
	}
	line("| Critical Year Starts%s | %s |", suffix, display(p.CriticalYearStart))
	line("| **Earliest Application Date%s** | **%s** |", suffix, display(p.EarliestApplication))
}
