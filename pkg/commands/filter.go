package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dateslicer/pkg/runner/filter"
	"tableflip.dev/dateslicer/pkg/store"
)

func addFilter(topLevel *cobra.Command) {
	name := ""

	cmd := &cobra.Command{
		Use:   "filter",
		Short: base.Wrap80("Show the filters the slicer has applied."),
		Example: `
dateslicer filter
dateslicer filter --name general --json
dateslicer filter clear
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			f := filter.Filter{
				Persistence: p,
				Name:        name,
				JSON:        oo.JSON,
			}
			err = f.Do(context.Background())
			return oo.HandleError(err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Only show this filter slot.")
	base.AddOutputArg(cmd, oo)

	addFilterClear(cmd)

	topLevel.AddCommand(cmd)
}

func addFilterClear(topLevel *cobra.Command) {
	name := store.GeneralFilter

	cmd := &cobra.Command{
		Use:       "clear",
		Short:     "Remove a filter slot.",
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			f := filter.Filter{
				Persistence: p,
				Name:        name,
				Clear:       true,
			}
			err = f.Do(context.Background())
			return oo.HandleError(err)
		},
	}
	cmd.Flags().StringVar(&name, "name", store.GeneralFilter, "The filter slot to clear.")

	topLevel.AddCommand(cmd)
}
