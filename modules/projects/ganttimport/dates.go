package ganttimport

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from Dec 30 1899. The off-by-two vs.
// Jan 1 1900 absorbs the fictitious 1900 leap day Excel carries around.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const isoDate = "2006-01-02"

type datePattern struct {
	re        *regexp.Regexp
	yearFirst bool
	shortYear bool
}

// Tried in order; the first matching pattern that survives the calendar
// round-trip wins. DD/MM/YY must come after DD/MM/YYYY or four-digit years
// would be truncated.
var datePatterns = []datePattern{
	{re: regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`), yearFirst: true},
	{re: regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)},
	{re: regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{2})`), shortYear: true},
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)},
}

// Lenient layouts tried as a last resort. This is a deliberately fixed
// subset of what a browser's Date constructor accepts: the slash patterns
// above already own the numeric forms (and read them day-first, so a
// US-style "3/5/24" is out of scope on purpose), and the month-name
// layouts cover the ways MS Project and Excel render dates as text.
// Anything beyond this set is rejected rather than guessed at.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
}

// ParseDate normalizes a raw cell value to an ISO "YYYY-MM-DD" date.
// Strategies, first success wins: spreadsheet serial number, YYYY-MM-DD,
// DD/MM/YYYY, DD/MM/YY (year 2000-based), D/M/YYYY, then lenient layouts.
// Serial and lenient results are accepted only for years strictly between
// 1900 and 2100. Returns ok=false when every strategy fails.
func ParseDate(value string) (string, bool) {
	strValue := strings.TrimSpace(value)
	if strValue == "" {
		return "", false
	}

	if n, err := strconv.ParseFloat(strValue, 64); err == nil && n > 0 && n < 100000 {
		d := serialEpoch.Add(time.Duration(n * float64(24*time.Hour)))
		if yearInRange(d.Year()) {
			return d.Format(isoDate), true
		}
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(strValue)
		if m == nil {
			continue
		}

		var year, month, day int
		if p.yearFirst {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		} else {
			day, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
			if p.shortYear {
				year += 2000
			}
		}

		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		// Reconstruct and compare: catches day=31 in a 30-day month and
		// similar overflows time.Date would silently normalize.
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Year() != year || int(d.Month()) != month || d.Day() != day {
			continue
		}
		return d.Format(isoDate), true
	}

	for _, layout := range fallbackLayouts {
		d, err := time.Parse(layout, strValue)
		if err != nil {
			continue
		}
		if yearInRange(d.Year()) {
			return d.Format(isoDate), true
		}
	}

	return "", false
}

// FromISO converts a normalized ISO date back to a date-only UTC time.
func FromISO(iso string) (time.Time, bool) {
	d, err := time.Parse(isoDate, iso)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func yearInRange(year int) bool {
	return year > 1900 && year < 2100
}
