/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the residence model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO: Response types returned to clients

TYPES:
  Assessment:
    AssessmentRequest, AssessmentDTO, ProjectionDTO, YearDTO, TripDTO

  Policy:
    PolicyDTO

VALIDATION:
  Request types carry validator tags. The label and date rules are the
  ones the file loaders apply, registered in loader/validate.go.

SEE ALSO:
  - handlers.go: Uses these types
  - loader/record.go: RecordInput, which AssessmentRequest converts to
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/loader"
	"github.com/warp/residence-engine/residence"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// AssessmentRequest is one applicant's record plus optional overrides.
type AssessmentRequest struct {
	FirstEntry string               `json:"first_entry" validate:"required,date"`
	Permits    []loader.PermitInput `json:"permits" validate:"required,min=1,dive"`
	Travels    []loader.TravelInput `json:"travels" validate:"omitempty,dive"`

	// Today defaults to the server's calendar day in its configured zone.
	Today string `json:"today,omitempty" validate:"omitempty,date"`

	// Policy overrides; the server's policy applies when absent.
	GoalDays   *int `json:"goal_days,omitempty" validate:"omitempty,gt=0"`
	ExcuseDays *int `json:"excuse_days,omitempty" validate:"omitempty,gte=0"`
}

func (r AssessmentRequest) recordInput() loader.RecordInput {
	return loader.RecordInput{FirstEntry: r.FirstEntry, Permits: r.Permits, Travels: r.Travels}
}

func (r AssessmentRequest) policy(base residence.Policy) residence.Policy {
	if r.GoalDays != nil {
		base.GoalDays = *r.GoalDays
	}
	if r.ExcuseDays != nil {
		base.ExcuseDaysPerYear = *r.ExcuseDays
	}
	return base
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// PolicyDTO is the rule an assessment was computed under.
type PolicyDTO struct {
	GoalDays          int    `json:"goal_days"`
	ExcuseDaysPerYear int    `json:"excuse_days_per_year"`
	Timezone          string `json:"timezone,omitempty"`
}

// ProjectionDTO is the eligibility outlook under one absence total.
type ProjectionDTO struct {
	AbsentDays          int             `json:"absent_days"`
	DaysLeft            int             `json:"days_left"`
	DaysLeftClamped     int             `json:"days_left_clamped"`
	EarliestApplication string          `json:"earliest_application"`
	CriticalYearStart   string          `json:"critical_year_start"`
	AlreadyEligible     bool            `json:"already_eligible"`
	Progress            decimal.Decimal `json:"progress_percent"`
}

// YearDTO is one anniversary year of the absence breakdown.
type YearDTO struct {
	Index       int    `json:"index"`
	Start       string `json:"start"`
	End         string `json:"end"`
	AbsentDays  int    `json:"absent_days"`
	ExcessDays  int    `json:"excess_days"`
	CurrentYear bool   `json:"current,omitempty"`
}

// TripDTO is one trip as submitted with its absence.
type TripDTO struct {
	Location   string `json:"location"`
	Start      string `json:"start"`
	End        string `json:"end"`
	AbsentDays int    `json:"absent_days"`
}

// AssessmentDTO is the full result of POST /api/assessments.
type AssessmentDTO struct {
	ReportID string    `json:"report_id"`
	Today    string    `json:"today"`
	Policy   PolicyDTO `json:"policy"`

	DaysWithoutPermit int `json:"days_without_permit"`
	PermitDays        int `json:"permit_days"`
	DaysAccumulated   int `json:"days_accumulated"`

	AbsentDays         int `json:"absent_days"`
	ExcessAbsentDays   int `json:"absent_days_after_excuses"`
	RemainingAllowance int `json:"remaining_allowance"`

	Raw     ProjectionDTO `json:"raw"`
	Excused ProjectionDTO `json:"excused"`

	GoalWithoutAbsence string `json:"goal_without_absence"`
	RenewalDate        string `json:"renewal_date"`

	Years []YearDTO `json:"years"`
	Trips []TripDTO `json:"trips"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toProjectionDTO(p residence.Projection, goal, eligible int) ProjectionDTO {
	return ProjectionDTO{
		AbsentDays:          p.Absence,
		DaysLeft:            p.DaysLeft.Raw,
		DaysLeftClamped:     p.DaysLeft.Clamped,
		EarliestApplication: p.EarliestApplication.String(),
		CriticalYearStart:   p.CriticalYearStart.String(),
		AlreadyEligible:     p.AlreadyEligible(),
		Progress:            residence.Progress(goal, eligible),
	}
}

func toAssessmentDTO(id string, a residence.Assessment) AssessmentDTO {
	years := make([]YearDTO, len(a.Breakdown.Rows))
	for i, row := range a.Breakdown.Rows {
		years[i] = YearDTO{
			Index:       row.Index,
			Start:       row.WindowStart.String(),
			End:         row.WindowEnd.String(),
			AbsentDays:  row.RawAbsentDays,
			ExcessDays:  row.ExcusedAbsentDays,
			CurrentYear: row.Current,
		}
	}
	trips := make([]TripDTO, len(a.Trips))
	for i, t := range a.Trips {
		trips[i] = TripDTO{
			Location:   t.Travel.Location,
			Start:      t.Travel.Start.String(),
			End:        t.Travel.End.String(),
			AbsentDays: t.AbsentDays,
		}
	}

	return AssessmentDTO{
		ReportID: id,
		Today:    a.Record.Today.String(),
		Policy: PolicyDTO{
			GoalDays:          a.Policy.GoalDays,
			ExcuseDaysPerYear: a.Policy.ExcuseDaysPerYear,
		},
		DaysWithoutPermit:  a.Accumulation.DaysWithoutPermit,
		PermitDays:         a.Accumulation.PermitDays,
		DaysAccumulated:    a.Accumulation.Total,
		AbsentDays:         a.AbsentDays,
		ExcessAbsentDays:   a.Breakdown.TotalExcusedAbsence,
		RemainingAllowance: a.Breakdown.RemainingAllowance,
		Raw:                toProjectionDTO(a.Raw, a.Policy.GoalDays, a.Eligible()),
		Excused:            toProjectionDTO(a.Excused, a.Policy.GoalDays, a.EligibleExcused()),
		GoalWithoutAbsence: a.GoalWithoutAbsence.String(),
		RenewalDate:        dateOrEmpty(a.RenewalDate),
		Years:              years,
		Trips:              trips,
	}
}

func dateOrEmpty(d generic.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
