package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dateslicer/pkg/commands/options"
	"tableflip.dev/dateslicer/pkg/runner/apply"
	"tableflip.dev/dateslicer/pkg/runner/days"
	"tableflip.dev/dateslicer/pkg/store"
)

func addDays(topLevel *cobra.Command) {
	co := &options.ColumnOptions{}
	startingToday := false

	cmd := &cobra.Command{
		Use:   "days N",
		Short: "Resolve the N days up to today, or starting today",
		Example: `
dateslicer days 7
dateslicer days 30 --starting-today
dateslicer days 14 --apply --column Sales.OrderDate
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return oo.HandleError(fmt.Errorf("days: %q is not a number", args[0]))
			}
			d := days.Days{
				N:             n,
				StartingToday: startingToday,
				JSON:          oo.JSON,
			}
			if co.Apply {
				s, err := loadSettings()
				if err != nil {
					return oo.HandleError(err)
				}
				ch, err := store.Load(s)
				if err != nil {
					return oo.HandleError(err)
				}
				d.Apply = &apply.Apply{Host: ch, QueryName: co.Column}
			}
			err = d.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&startingToday, "starting-today", "s", false,
		"Count forward from today instead of back.")
	options.AddColumnArgs(cmd, co)
	options.AddApplyArg(cmd, co)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
