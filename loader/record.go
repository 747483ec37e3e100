package loader

import (
	"fmt"

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/residence"
)

// =============================================================================
// INPUT SHAPES - Untrusted text before it becomes a residence.Record
// =============================================================================

// PermitInput is one permit as written by the applicant.
type PermitInput struct {
	Name  string `json:"name" validate:"required,label"`
	Start string `json:"start" validate:"required,date"`
	End   string `json:"end" validate:"required,date"`
}

// TravelInput is one trip as written by the applicant.
type TravelInput struct {
	Start    string `json:"start" validate:"required,date"`
	End      string `json:"end" validate:"required,date"`
	Location string `json:"location" validate:"required,label"`
}

// RecordInput is a whole record in one document, as the HTTP API receives it.
type RecordInput struct {
	FirstEntry string        `json:"first_entry" validate:"required,date"`
	Permits    []PermitInput `json:"permits" validate:"required,min=1,dive"`
	Travels    []TravelInput `json:"travels" validate:"omitempty,dive"`
}

// Entry converts a validated permit.
func (p PermitInput) Entry() (residence.PermitEntry, error) {
	period, err := parsePeriod(p.Start, p.End)
	if err != nil {
		return residence.PermitEntry{}, err
	}
	return residence.PermitEntry{Period: period, Name: p.Name}, nil
}

// Travel converts a validated trip.
func (t TravelInput) Travel() (residence.Travel, error) {
	period, err := parsePeriod(t.Start, t.End)
	if err != nil {
		return residence.Travel{}, err
	}
	return residence.Travel{Period: period, Location: t.Location}, nil
}

func parsePeriod(start, end string) (generic.Period, error) {
	s, err := generic.ParseDate(start)
	if err != nil {
		return generic.Period{}, err
	}
	e, err := generic.ParseDate(end)
	if err != nil {
		return generic.Period{}, err
	}
	return generic.NewPeriod(s, e)
}

// Record validates in and builds the record for today. source names the
// input in errors.
func (in RecordInput) Record(source string, today generic.Date) (residence.Record, error) {
	if field, msg, ok := Check(in); !ok {
		return residence.Record{}, &InputError{Source: source, Field: field, Reason: msg}
	}

	first, err := generic.ParseDate(in.FirstEntry)
	if err != nil {
		return residence.Record{}, &InputError{Source: source, Field: "first_entry", Reason: err.Error(), Err: err}
	}

	rec := residence.Record{FirstEntry: first, Today: today}
	for i, p := range in.Permits {
		entry, err := p.Entry()
		if err != nil {
			return residence.Record{}, &InputError{
				Source: source, Field: fmt.Sprintf("permits[%d]", i),
				Reason: fmt.Sprintf("permit %q: %v", p.Name, err), Err: err,
			}
		}
		rec.Permits = append(rec.Permits, entry)
	}
	for i, t := range in.Travels {
		travel, err := t.Travel()
		if err != nil {
			return residence.Record{}, &InputError{
				Source: source, Field: fmt.Sprintf("travels[%d]", i),
				Reason: err.Error(), Err: err,
			}
		}
		rec.Travels = append(rec.Travels, travel)
	}
	return rec, nil
}
