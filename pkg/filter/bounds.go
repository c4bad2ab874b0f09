package filter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
)

// Bounds scans date-like values and returns the earliest and latest day.
// Values that are nil or cannot be read as a date are skipped; ok is false
// when nothing usable was found.
func Bounds(values []any, loc *time.Location) (lo, hi time.Time, ok bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, v := range values {
		d, good := toDate(v, loc)
		if !good {
			continue
		}
		if !ok || d.Before(lo) {
			lo = d
		}
		if !ok || d.After(hi) {
			hi = d
		}
		ok = true
	}
	return lo, hi, ok
}

func toDate(v any, loc *time.Location) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if x.IsZero() {
			return time.Time{}, false
		}
		return dates.StripTime(x.In(loc)), true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return toDate(*x, loc)
	case string:
		return parseString(x, loc)
	case int64:
		return fromMillis(float64(x), loc)
	case int:
		return fromMillis(float64(x), loc)
	case float64:
		return fromMillis(x, loc)
	default:
		return time.Time{}, false
	}
}

func parseString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, ok := dates.ParseISO(s, loc); ok {
		return d, true
	}
	if d, ok := dates.ParseDate(s, loc); ok {
		return d, true
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillis(ms, loc)
	}
	return time.Time{}, false
}

// minMillis is 1970-04-26. Smaller numbers are years, counts or ids, not
// timestamps.
const minMillis = 1e10

// fromMillis treats n as milliseconds since the Unix epoch.
func fromMillis(n float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) < minMillis {
		return time.Time{}, false
	}
	return dates.StripTime(time.UnixMilli(int64(n)).In(loc)), true
}
