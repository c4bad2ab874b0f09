package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dateslicer/pkg/commands/options"
	"tableflip.dev/dateslicer/pkg/runner/grid"
)

func addGrid(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	cal := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print month grids with a range highlighted",
		Example: `
dateslicer grid
dateslicer grid --month 2024-02
dateslicer grid --start 12/28/2023 --end 02/02/2024
dateslicer grid --preset this-month --first-day monday
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			if err := cal.Apply(s); err != nil {
				return err
			}
			now := time.Now()
			r, err := ro.GetRange(s.Calendar.FirstDayOfWeek, time.Time{}, now)
			if err != nil {
				return err
			}
			month, err := ro.GetMonth(now.Location())
			if err != nil {
				return err
			}
			g := grid.Grid{
				Range:    r,
				Month:    month,
				FirstDay: s.Calendar.FirstDayOfWeek,
			}
			return g.Do(context.Background())
		},
	}

	options.AddRangeArgs(cmd, ro)
	options.AddMonthArg(cmd, ro)
	options.AddFirstDayArg(cmd, cal)
	registerPresetCompletion(cmd)

	topLevel.AddCommand(cmd)
}
