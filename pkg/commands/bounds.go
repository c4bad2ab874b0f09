package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dateslicer/pkg/runner/bounds"
)

func addBounds(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "bounds [value...]",
		Short: base.Wrap80("Report the earliest and latest date in a column of values. Reads stdin when no values are given."),
		Example: `
dateslicer bounds 2021-03-04 1700000000000 "2023-08-01T10:00:00Z"
cut -d, -f3 orders.csv | dateslicer bounds --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := bounds.Bounds{
				Values: args,
				JSON:   oo.JSON,
			}
			if len(args) == 0 {
				b.In = os.Stdin
			}
			err := b.Do(context.Background())
			return oo.HandleError(err)
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
