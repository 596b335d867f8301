package entities

import (
	"strings"
	"time"
)

var monthAliases = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// NormalizeMonth maps a month alias onto its canonical name ("sept." -> "September").
func NormalizeMonth(value string) (string, bool) {
	m, ok := ParseMonth(value)
	if !ok {
		return "", false
	}
	return m.String(), true
}

// ParseMonth matches case-insensitively after stripping periods and surrounding space.
func ParseMonth(value string) (time.Month, bool) {
	v := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), ".", ""))
	if v == "" {
		return 0, false
	}
	m, ok := monthAliases[v]
	return m, ok
}

// MonthNumber returns 1..12 for a canonical month name, 0 otherwise.
func MonthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 0
}

// ChooseYear picks the year a month should be planned for: the preferred year (or the
// current one) unless that month is already behind us, in which case next year.
func ChooseYear(month time.Month, preferred int, now time.Time) int {
	now = now.UTC()
	y := preferred
	if y == 0 {
		y = now.Year()
	}
	if month < time.January || month > time.December {
		return y
	}
	if y < now.Year() || (y == now.Year() && month < now.Month()) {
		return now.Year() + 1
	}
	return y
}

// MonthRange returns the first and last second of the month in UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// ParseWhen understands a month alias or an ISO year-month ("2027-04").
// The returned year is zero unless the text carried one.
func ParseWhen(value string) (time.Month, int, bool) {
	if m, ok := ParseMonth(value); ok {
		return m, 0, true
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, false
	}
	return t.Month(), t.Year(), true
}
