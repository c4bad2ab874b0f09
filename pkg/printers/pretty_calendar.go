package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dateslicer/pkg/dates"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints one month grid, marking today and the range r.
func (pp *PrettyPrint) Month(year int, month time.Month, firstDay time.Weekday, r dates.Range, now time.Time) {
	w := pp.out()
	tf := color.New(color.Bold)

	m := fmt.Sprintf("%s %d", dates.MonthNames[month-1], year)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", max(0, width-mid-len(m))))

	hf := color.New(color.Faint, color.Underline)
	headers := dates.WeekdayHeaders(firstDay)
	for i, h := range headers {
		_, _ = hf.Fprint(w, h[:2])
		if i < len(headers)-1 {
			_, _ = fmt.Fprint(w, " ")
		}
	}
	_, _ = fmt.Fprint(w, "\n")

	for _, week := range dates.MonthGrid(year, month, firstDay, r.Start, r.End, now) {
		for i, d := range week {
			_, _ = dayColor(d).Fprintf(w, "%2d", d.Number)
			if i < len(week)-1 {
				_, _ = fmt.Fprint(w, " ")
			}
		}
		_, _ = fmt.Fprint(w, "\n")
	}
	_, _ = fmt.Fprint(w, "\n")
}

// Calendar prints every month touched by r, or the month of now when r is
// empty.
func (pp *PrettyPrint) Calendar(r dates.Range, firstDay time.Weekday, now time.Time) {
	from := now
	to := now
	if !r.Start.IsZero() {
		from = r.Start
		to = r.Start
		if !r.End.IsZero() {
			to = r.End
		}
	}
	for m := dates.StartOfMonth(from); !m.After(to); m = NextMonth(m) {
		pp.Month(m.Year(), m.Month(), firstDay, r, now)
	}
}

func dayColor(d dates.Day) *color.Color {
	attrs := []color.Attribute{}
	switch {
	case d.IsRangeStart || d.IsRangeEnd:
		attrs = append(attrs, color.Bold, color.FgHiWhite, color.BgBlue)
	case d.IsInRange:
		attrs = append(attrs, color.FgHiWhite, color.BgHiBlack)
	case !d.IsCurrentMonth:
		attrs = append(attrs, color.Faint)
	}
	if d.IsToday {
		attrs = append(attrs, color.Underline)
	}
	return color.New(attrs...)
}

// NextMonth returns the first day of the month after then.
func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}
