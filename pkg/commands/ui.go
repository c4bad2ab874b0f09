package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dateslicer/pkg/commands/options"
	"tableflip.dev/dateslicer/pkg/runner/ui"
	"tableflip.dev/dateslicer/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	co := &options.ColumnOptions{}
	cal := &options.CalendarOptions{}
	statePath := ""
	dialogMode := false

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive date slicer",
		Example: `
dateslicer ui --column Sales.OrderDate --min 2021-01-04 --max 2024-06-30
dateslicer ui --mode compact
dateslicer ui --dialog --column Sales.OrderDate
dateslicer ui --state dialog.json
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
			p, err := store.Load(s)
			if err != nil {
				return err
			}
			i := ui.UI{
				Persistence: p,
				Settings:    s,
				QueryName:   co.Column,
				Values:      co.Values(),
				Dialog:      dialogMode,
				StatePath:   statePath,
			}
			return i.Do(context.Background())
		},
	}

	options.AddColumnArgs(cmd, co)
	options.AddBoundsArgs(cmd, co)
	options.AddFirstDayArg(cmd, cal)
	options.AddDisplayArgs(cmd, cal)
	cmd.Flags().BoolVar(&dialogMode, "dialog", false,
		"Open the calendar dialog and apply its result to the column on quit.")
	cmd.Flags().StringVar(&statePath, "state", "",
		"Open the calendar dialog seeded from this dialog state file.")

	topLevel.AddCommand(cmd)
}
