package dates

import (
	"fmt"
	"strings"
	"time"
)

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange normalizes both ends and swaps them when end precedes start.
func NewRange(start, end time.Time) Range {
	start, end = StripTime(start), StripTime(end)
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Days returns the number of calendar days covered, inclusive.
func (r Range) Days() int {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	n := 1
	for d := r.Start; d.Before(r.End); d = AddDays(d, 1) {
		n++
	}
	return n
}

// Contains reports whether d is inside the range.
func (r Range) Contains(d time.Time) bool {
	return IsInRange(d, r.Start, r.End)
}

func (r Range) String() string {
	if IsSameDay(r.Start, r.End) {
		return FormatDate(r.Start)
	}
	return fmt.Sprintf("%s — %s", FormatDate(r.Start), FormatDate(r.End))
}

// Preset names a ready-made range rule.
type Preset string

const (
	Yesterday Preset = "yesterday"
	TodayKey  Preset = "today"
	MinDate   Preset = "minDate"
	ThisWeek  Preset = "thisWeek"
	LastWeek  Preset = "lastWeek"
	ThisMonth Preset = "thisMonth"
)

var presetLabels = map[Preset]string{
	Yesterday: "Yesterday",
	TodayKey:  "Today",
	MinDate:   "Min Date",
	ThisWeek:  "This Week",
	LastWeek:  "Last Week",
	ThisMonth: "This Month",
}

// Presets lists every preset in sidebar order.
func Presets() []Preset {
	return []Preset{Yesterday, TodayKey, MinDate, ThisWeek, LastWeek, ThisMonth}
}

// Label is the sidebar caption for the preset.
func (p Preset) Label() string {
	if l, ok := presetLabels[p]; ok {
		return l
	}
	return string(p)
}

// ParsePreset accepts a preset key, case-insensitively, with or without
// dashes ("last-week", "lastweek", "lastWeek").
func ParsePreset(s string) (Preset, bool) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, p := range Presets() {
		if strings.ToLower(string(p)) == norm {
			return p, true
		}
	}
	return "", false
}

// PresetRange computes the range for key as of now. minDate may be zero, in
// which case the minDate preset starts today. Unknown keys yield today.
func PresetRange(key Preset, firstDay time.Weekday, minDate, now time.Time) Range {
	t := Today(now)
	switch key {
	case Yesterday:
		y := AddDays(t, -1)
		return Range{Start: y, End: y}
	case MinDate:
		start := t
		if !minDate.IsZero() {
			start = StripTime(minDate)
		}
		return Range{Start: start, End: t}
	case ThisWeek:
		return Range{Start: StartOfWeek(t, firstDay), End: EndOfWeek(t, firstDay)}
	case LastWeek:
		d := AddDays(t, -7)
		return Range{Start: StartOfWeek(d, firstDay), End: EndOfWeek(d, firstDay)}
	case ThisMonth:
		return Range{Start: StartOfMonth(t), End: EndOfMonth(t)}
	default:
		return Range{Start: t, End: t}
	}
}

// DaysUpToToday spans the n days ending today.
func DaysUpToToday(n int, now time.Time) Range {
	t := Today(now)
	return Range{Start: AddDays(t, -(n - 1)), End: t}
}

// DaysStartingToday spans the n days starting today.
func DaysStartingToday(n int, now time.Time) Range {
	t := Today(now)
	return Range{Start: t, End: AddDays(t, n-1)}
}
