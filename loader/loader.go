// Package loader turns applicant files into a residence.Record.
//
// Permits come from YAML, travels from CSV. Both are validated strictly and
// rejected with an *InputError naming the file, line and field. Nothing in
// this package computes residence; it only builds the record.
package loader

import (
	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/residence"
)

// LoadRecord reads both input files and assembles the record for today.
func LoadRecord(permitsPath, travelsPath string, today generic.Date) (residence.Record, error) {
	permits, err := LoadPermits(permitsPath)
	if err != nil {
		return residence.Record{}, err
	}
	travels, err := LoadTravels(travelsPath)
	if err != nil {
		return residence.Record{}, err
	}
	return residence.Record{
		FirstEntry: permits.FirstEntry,
		Permits:    permits.Permits,
		Travels:    travels,
		Today:      today,
	}, nil
}
