package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dateslicer/pkg/dates"
)

const layoutMonth = "2006-01"

// RangeOptions picks a range by preset or by explicit start and end.
type RangeOptions struct {
	Start  string
	End    string
	Preset string
	Month  string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Range start, example: --start="01/31/2024" or --start="2024-01-31".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		"Range end, same formats as --start. Defaults to the start.")
	cmd.Flags().StringVarP(&o.Preset, "preset", "p", "",
		"Use a preset instead of --start/--end, example: --preset=last-week.")
}

func AddMonthArg(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show when no range is given, example: --month="2024-02".`)
}

// GetRange resolves the flags. A zero range means none were given.
func (o *RangeOptions) GetRange(firstDay time.Weekday, minDate, now time.Time) (dates.Range, error) {
	if o.Preset != "" {
		if o.Start != "" || o.End != "" {
			return dates.Range{}, fmt.Errorf("--preset can not be combined with --start or --end")
		}
		p, ok := dates.ParsePreset(o.Preset)
		if !ok {
			return dates.Range{}, fmt.Errorf("unknown preset %q", o.Preset)
		}
		return dates.PresetRange(p, firstDay, minDate, now), nil
	}
	if o.Start == "" {
		if o.End != "" {
			return dates.Range{}, fmt.Errorf("--end needs --start")
		}
		return dates.Range{}, nil
	}
	start, err := ParseDay(o.Start, now.Location())
	if err != nil {
		return dates.Range{}, err
	}
	end := start
	if o.End != "" {
		if end, err = ParseDay(o.End, now.Location()); err != nil {
			return dates.Range{}, err
		}
	}
	return dates.NewRange(start, end), nil
}

// GetMonth parses --month. Zero means unset.
func (o *RangeOptions) GetMonth(loc *time.Location) (time.Time, error) {
	if o.Month == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layoutMonth, o.Month, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month: %w", err)
	}
	return t, nil
}

// ParseDay accepts MM/DD/YYYY, falling back to ISO dates.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if d, ok := dates.ParseDate(s, loc); ok {
		return d, nil
	}
	if d, ok := dates.ParseISO(s, loc); ok {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("can not read %q as a date", s)
}
