package ganttimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anprojects/anproyektim/modules/projects/ganttimport"
)

func TestParseDate_SupportedFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"ISO", "2024-03-01", "2024-03-01"},
		{"ISO_With_Time_Suffix", "2024-03-01T00:00:00", "2024-03-01"},
		{"DD_MM_YYYY", "01/03/2024", "2024-03-01"},
		{"DD_MM_YY", "01/03/24", "2024-03-01"},
		{"D_M_YYYY", "1/3/2024", "2024-03-01"},
		{"D_MM_YYYY", "9/12/2024", "2024-12-09"},
		{"Serial_Number", "45352", "2024-03-01"},
		{"Serial_Number_Year_Start", "44927", "2023-01-01"},
		{"Leading_Whitespace", "  15/03/2024 ", "2024-03-15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ganttimport.ParseDate(tc.input)
			assert.True(t, ok, "expected %q to parse", tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDate_InvalidInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Whitespace", "   "},
		{"Garbage", "not a date"},
		{"Invalid_Calendar_Feb_31", "31/02/2024"},
		{"Invalid_Calendar_ISO", "2024-02-31"},
		{"Invalid_Calendar_April_31", "31/04/2024"},
		{"Month_Thirteen", "05/13/2024"},
		{"Serial_Zero", "0"},
		{"Serial_Year_1900_Excluded", "5"},
		{"Serial_Negative", "-10"},
		{"Serial_Too_Large", "100000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ganttimport.ParseDate(tc.input)
			assert.False(t, ok, "expected %q to be rejected, got %q", tc.input, got)
		})
	}
}

func TestParseDate_InvalidCalendarDateNeverClamped(t *testing.T) {
	t.Parallel()

	// A failed round trip must fall through, not wrap into March.
	got, ok := ganttimport.ParseDate("31/02/2024")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestParseDate_ShortYearMapsToTwoThousands(t *testing.T) {
	t.Parallel()

	// No century pivot: every two-digit year lands in the 2000s.
	got, ok := ganttimport.ParseDate("01/01/99")
	assert.True(t, ok)
	assert.Equal(t, "2099-01-01", got)
}

func TestFromISO(t *testing.T) {
	t.Parallel()

	d, ok := ganttimport.FromISO("2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	_, ok = ganttimport.FromISO("01/03/2024")
	assert.False(t, ok)
}
