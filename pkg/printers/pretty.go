package printers

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/filter"
)

// PrettyPrint writes colored, human readable output.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Range prints a resolved range and its length.
func (pp *PrettyPrint) Range(r dates.Range) {
	if r.Start.IsZero() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " none")
		return
	}
	c := color.New(color.Faint)
	_, _ = fmt.Fprint(pp.out(), r.String())
	_, _ = c.Fprintf(pp.out(), " - %s\n", plural(r.Days(), "day"))
}

// Presets prints every preset resolved against now.
func (pp *PrettyPrint) Presets(firstDay time.Weekday, minDate, now time.Time) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Preset"), bold.Sprint("Key"), bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Days"))
	for i, p := range dates.Presets() {
		r := dates.PresetRange(p, firstDay, minDate, now)
		if r.Start.IsZero() {
			tbl.AddRow(i+1, p.Label(), string(p), "-", "-", "-")
			continue
		}
		tbl.AddRow(i+1, p.Label(), string(p), dates.FormatDate(r.Start), dates.FormatDate(r.End), r.Days())
	}
	tbl.RightAlign(0)
	tbl.RightAlign(5)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Filters prints the stored filters with their decoded ranges.
func (pp *PrettyPrint) Filters(loc *time.Location, all ...filter.Advanced) {
	if len(all) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Target"), bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Days"))
	for _, f := range all {
		start, end, ok := f.Range(loc)
		if !ok {
			tbl.AddRow(f.Target.String(), "-", "-", "-")
			continue
		}
		tbl.AddRow(f.Target.String(), dateOrDash(start), dateOrDash(end), daysOrDash(start, end))
	}
	tbl.RightAlign(3)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func dateOrDash(d time.Time) string {
	if d.IsZero() {
		return "-"
	}
	return dates.FormatDate(d)
}

func daysOrDash(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "-"
	}
	return strconv.Itoa(dates.NewRange(start, end).Days())
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
