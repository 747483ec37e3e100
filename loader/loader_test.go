package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/loader"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func requireInputError(t *testing.T, err error, contains string) *loader.InputError {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrInvalidInput)
	var ie *loader.InputError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, err.Error(), contains)
	return ie
}

const validPermits = `first_entry: 2020-01-15
permits:
  - name: stamp1
    start: 2020-07-01
    end: 2021-07-01
  - name: stamp 4_renewal-2
    start: "2021-06-25"
    end: 2025-06-25
`

// =============================================================================
// PERMITS
// =============================================================================

func TestLoadPermits_Valid(t *testing.T) {
	pf, err := loader.LoadPermits(writeFile(t, "permits.yaml", validPermits))

	require.NoError(t, err)
	assert.Equal(t, generic.NewDate(2020, time.January, 15), pf.FirstEntry)
	require.Len(t, pf.Permits, 2)
	assert.Equal(t, "stamp1", pf.Permits[0].Name)
	assert.Equal(t, generic.NewDate(2021, time.July, 1), pf.Permits[0].End)
	assert.Equal(t, "stamp 4_renewal-2", pf.Permits[1].Name)
	assert.Equal(t, generic.NewDate(2021, time.June, 25), pf.Permits[1].Start)
}

func TestLoadPermits_LegacyKeys(t *testing.T) {
	src := `ireland_first_entry: 2020-01-15
irp:
  - name: stamp1
    start: 2020-07-01
    end: 2021-07-01
`
	pf, err := loader.ParsePermits("legacy.yaml", []byte(src))

	require.NoError(t, err)
	assert.Equal(t, generic.NewDate(2020, time.January, 15), pf.FirstEntry)
	assert.Len(t, pf.Permits, 1)
}

func TestLoadPermits_MissingFile(t *testing.T) {
	_, err := loader.LoadPermits(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorIs(t, err, loader.ErrNotFound)
	assert.False(t, errors.Is(err, loader.ErrInvalidInput))
}

func TestParsePermits_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		contains string
	}{
		{"empty document", "", "YAML mapping at the top level"},
		{"top level list", "- a\n- b\n", "YAML mapping at the top level"},
		{"unknown top level key", validPermits + "extra: 1\n", "extra: unexpected key"},
		{"duplicate via alias", "ireland_first_entry: 2020-01-01\n" + validPermits, "first_entry given more than once"},
		{"missing first entry", "permits:\n  - {name: a, start: 2020-01-01, end: 2020-02-01}\n", "first_entry: missing required key"},
		{"missing permits", "first_entry: 2020-01-01\n", "permits: missing required key"},
		{"permits not a list", "first_entry: 2020-01-01\npermits: stamp1\n", "must be a list"},
		{"empty permits", "first_entry: 2020-01-01\npermits: []\n", "must not be empty"},
		{"entry not a mapping", "first_entry: 2020-01-01\npermits:\n  - stamp1\n", "permits[0]: entry must be a mapping"},
		{"unknown entry key", "first_entry: 2020-01-01\npermits:\n  - {name: a, start: 2020-01-01, end: 2020-02-01, note: x}\n", "permits[0].note: unexpected key"},
		{"missing entry keys", "first_entry: 2020-01-01\npermits:\n  - {name: a}\n", "missing start, end"},
		{"bad first entry date", "first_entry: 15/01/2020\npermits:\n  - {name: a, start: 2020-01-01, end: 2020-02-01}\n", "invalid date format"},
		{"first entry year out of range", "first_entry: 0001-01-01\npermits:\n  - {name: a, start: 2020-01-01, end: 2020-02-01}\n", "year must be between 1900 and 2200"},
		{"bad entry date", "first_entry: 2020-01-01\npermits:\n  - {name: a, start: 2020-1-1, end: 2020-02-01}\n", "permits[0].start"},
		{"invalid name", "first_entry: 2020-01-01\npermits:\n  - {name: \"a|b\", start: 2020-01-01, end: 2020-02-01}\n", "permits[0].name"},
		{"end before start", "first_entry: 2020-01-01\npermits:\n  - {name: a, start: 2020-02-01, end: 2020-01-01}\n", "end date before start date"},
		{"malformed yaml", "first_entry: [\n", "malformed YAML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.ParsePermits("permits.yaml", []byte(tc.src))
			requireInputError(t, err, tc.contains)
		})
	}
}

func TestParsePermits_ReportsLineOfUnexpectedKey(t *testing.T) {
	_, err := loader.ParsePermits("permits.yaml", []byte(validPermits+"extra: 1\n"))

	ie := requireInputError(t, err, "unexpected key")
	assert.Equal(t, 8, ie.Line)
	assert.Equal(t, "extra", ie.Field)
}

func TestParsePermits_EndBeforeStartWrapsPeriodError(t *testing.T) {
	src := "first_entry: 2020-01-01\npermits:\n  - {name: a, start: 2020-02-01, end: 2020-01-01}\n"
	_, err := loader.ParsePermits("permits.yaml", []byte(src))

	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

// =============================================================================
// TRAVELS
// =============================================================================

func TestLoadTravels_Valid(t *testing.T) {
	src := "start,end,location\n2020-08-10,2020-08-25,TR\n\n   \n2021-03-15, 2021-03-22 , United Kingdom\n"
	travels, err := loader.LoadTravels(writeFile(t, "travels.csv", src))

	require.NoError(t, err)
	require.Len(t, travels, 2)
	assert.Equal(t, "TR", travels[0].Location)
	assert.Equal(t, generic.NewDate(2020, time.August, 10), travels[0].Start)
	assert.Equal(t, "United Kingdom", travels[1].Location)
	assert.Equal(t, generic.NewDate(2021, time.March, 22), travels[1].End)
}

func TestLoadTravels_HeaderOnlyIsEmpty(t *testing.T) {
	travels, err := loader.ParseTravels("travels.csv", strings.NewReader("start,end,location\n"))

	require.NoError(t, err)
	assert.Empty(t, travels)
}

func TestLoadTravels_MissingFile(t *testing.T) {
	_, err := loader.LoadTravels(filepath.Join(t.TempDir(), "travels.csv"))

	assert.ErrorIs(t, err, loader.ErrNotFound)
}

func TestParseTravels_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		contains string
		line     int
	}{
		{"empty file", "", "file is empty", 0},
		{"wrong header", "from,to,where\n", "unexpected header", 1},
		{"too few columns", "start,end,location\n2020-08-10,2020-08-25\n", "row has 2 columns", 2},
		{"too many columns", "start,end,location\n2020-08-10,2020-08-25,TR,extra\n", "row has 4 columns", 2},
		{"empty location", "start,end,location\n2020-08-10,2020-08-25,  \n", "location", 2},
		{"invalid location", "start,end,location\n2020-08-10,2020-08-25,<script>\n", "location", 2},
		{"bad date", "start,end,location\n10/08/2020,2020-08-25,TR\n", "start", 2},
		{"year out of range", "start,end,location\n1700-08-10,2020-08-25,TR\n", "between 1900 and 2200", 2},
		{"end before start", "start,end,location\n\n2020-08-25,2020-08-10,TR\n", "end date before start date", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.ParseTravels("travels.csv", strings.NewReader(tc.src))
			ie := requireInputError(t, err, tc.contains)
			assert.Equal(t, tc.line, ie.Line)
		})
	}
}

// =============================================================================
// RECORD
// =============================================================================

func TestLoadRecord_CombinesFiles(t *testing.T) {
	permits := writeFile(t, "permits.yaml", validPermits)
	travels := writeFile(t, "travels.csv", "start,end,location\n2020-08-10,2020-08-25,TR\n")
	today := generic.NewDate(2024, time.June, 1)

	rec, err := loader.LoadRecord(permits, travels, today)

	require.NoError(t, err)
	assert.Equal(t, today, rec.Today)
	assert.Len(t, rec.Permits, 2)
	assert.Len(t, rec.Travels, 1)
}

func TestRecordInput_Record(t *testing.T) {
	today := generic.NewDate(2024, time.June, 1)
	in := loader.RecordInput{
		FirstEntry: "2020-01-15",
		Permits:    []loader.PermitInput{{Name: "stamp1", Start: "2020-07-01", End: "2021-07-01"}},
		Travels:    []loader.TravelInput{{Start: "2020-08-10", End: "2020-08-25", Location: "TR"}},
	}

	rec, err := in.Record("request", today)

	require.NoError(t, err)
	assert.Equal(t, generic.NewDate(2020, time.January, 15), rec.FirstEntry)
	assert.Len(t, rec.Permits, 1)
	assert.Len(t, rec.Travels, 1)
}

func TestRecordInput_RecordRejections(t *testing.T) {
	today := generic.NewDate(2024, time.June, 1)
	base := func() loader.RecordInput {
		return loader.RecordInput{
			FirstEntry: "2020-01-15",
			Permits:    []loader.PermitInput{{Name: "stamp1", Start: "2020-07-01", End: "2021-07-01"}},
		}
	}

	noPermits := base()
	noPermits.Permits = nil
	_, err := noPermits.Record("request", today)
	ie := requireInputError(t, err, "permits")
	assert.Equal(t, "permits", ie.Field)

	badName := base()
	badName.Permits[0].Name = "[x]"
	_, err = badName.Record("request", today)
	ie = requireInputError(t, err, "may only contain")
	assert.Equal(t, "permits[0].name", ie.Field)

	badTrip := base()
	badTrip.Travels = []loader.TravelInput{{Start: "2020-08-25", End: "2020-08-10", Location: "TR"}}
	_, err = badTrip.Record("request", today)
	ie = requireInputError(t, err, "end date before start date")
	assert.Equal(t, "travels[0]", ie.Field)
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}
