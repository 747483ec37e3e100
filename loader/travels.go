package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/warp/residence-engine/residence"
)

// TravelsHeader is the only header accepted on a travel file.
const TravelsHeader = "start,end,location"

// LoadTravels reads and validates the travel CSV at path.
func LoadTravels(path string) ([]residence.Travel, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTravels(path, bytes.NewReader(data))
}

// ParseTravels validates travel CSV read from r. Blank lines are skipped;
// a file holding only the header yields no travels.
func ParseTravels(source string, r io.Reader) ([]residence.Travel, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, inputErr(source, 0, "", "file is empty")
	}
	if err != nil {
		return nil, csvErr(source, err)
	}
	if got := strings.TrimSpace(strings.Join(header, ",")); got != TravelsHeader {
		return nil, inputErr(source, 1, "", "unexpected header %q, expected %q", got, TravelsHeader)
	}

	travels := []residence.Travel{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return travels, nil
		}
		if err != nil {
			return nil, csvErr(source, err)
		}
		line, _ := cr.FieldPos(0)

		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != 3 {
			return nil, inputErr(source, line, "", "row has %d columns, expected 3", len(rec))
		}

		in := TravelInput{
			Start:    strings.TrimSpace(rec[0]),
			End:      strings.TrimSpace(rec[1]),
			Location: strings.TrimSpace(rec[2]),
		}
		if field, msg, ok := Check(in); !ok {
			return nil, inputErr(source, line, field, "%s", msg)
		}
		t, err := in.Travel()
		if err != nil {
			return nil, &InputError{Source: source, Line: line, Reason: err.Error(), Err: err}
		}
		travels = append(travels, t)
	}
}

func csvErr(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &InputError{Source: source, Line: pe.Line, Reason: pe.Err.Error(), Err: err}
	}
	return fmt.Errorf("read %s: %w", source, err)
}
