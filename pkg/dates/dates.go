// Package dates implements the calendar arithmetic behind the slicer: day
// normalization, MM/DD/YYYY parsing, week and month boundaries, presets and
// month grids. Nothing here keeps state; every result keeps the location of
// its input.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	layoutUS  = "01/02/2006"
	layoutISO = "2006-01-02T15:04:05.000Z07:00"
)

// StripTime returns d at midnight in d's location.
func StripTime(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// Today is StripTime(now).
func Today(now time.Time) time.Time {
	return StripTime(now)
}

// FormatDate renders d as MM/DD/YYYY.
func FormatDate(d time.Time) string {
	return d.Format(layoutUS)
}

// ParseDate parses a strict MM/DD/YYYY string in loc. It reports false for
// the wrong number of fields, non-numeric fields, or a date that would roll
// over into another day or month (02/30/2024, 13/01/2024).
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		fields[i] = n
	}
	month, day, year := fields[0], fields[1], fields[2]
	if year < 1 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// FormatISO renders d as a UTC timestamp with millisecond precision, the way
// the serialized dialog and filter records carry dates.
func FormatISO(d time.Time) string {
	return d.UTC().Format(layoutISO)
}

// ParseISO reads an ISO-8601 timestamp or plain YYYY-MM-DD date and returns
// it normalized to midnight in loc.
func ParseISO(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return StripTime(t.In(loc)), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return StripTime(t), true
		}
	}
	return time.Time{}, false
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsInRange reports whether d lies within [start, end], compared by day.
func IsInRange(d, start, end time.Time) bool {
	t := StripTime(d)
	return !t.Before(StripTime(start)) && !t.After(StripTime(end))
}

// AddDays moves d by n calendar days and normalizes the result.
func AddDays(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day+n, 0, 0, 0, 0, d.Location())
}

// StartOfWeek returns the first day of the week containing d.
func StartOfWeek(d time.Time, firstDay time.Weekday) time.Time {
	diff := (int(d.Weekday()) - int(firstDay) + 7) % 7
	return AddDays(d, -diff)
}

// EndOfWeek is StartOfWeek plus six days.
func EndOfWeek(d time.Time, firstDay time.Weekday) time.Time {
	return AddDays(StartOfWeek(d, firstDay), 6)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth returns the last day of d's month.
func EndOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
