package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dateslicer/pkg/commands/options"
	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/runner/apply"
	"tableflip.dev/dateslicer/pkg/runner/preset"
	"tableflip.dev/dateslicer/pkg/store"
)

func addPreset(topLevel *cobra.Command) {
	co := &options.ColumnOptions{}
	cal := &options.CalendarOptions{}

	long := strings.Builder{}
	long.WriteString("Resolve a preset to its range, or list them all.\n\n")
	long.WriteString("Presets:\n")
	for _, p := range dates.Presets() {
		long.WriteString(fmt.Sprintf("%s: %s\n", p, p.Label()))
	}

	cmd := &cobra.Command{
		Use:   "preset [name]",
		Short: "Resolve the sidebar presets",
		Long:  long.String(),
		Example: `
dateslicer preset
dateslicer preset last-week --first-day monday
dateslicer preset min-date --min 2021-03-04 --apply --column Sales.OrderDate
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: presetCompletions(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return oo.HandleError(err)
			}
			if err := cal.Apply(s); err != nil {
				return oo.HandleError(err)
			}
			p := preset.Preset{
				FirstDay: s.Calendar.FirstDayOfWeek,
				MinDate:  co.MinDate(time.Local),
				JSON:     oo.JSON,
			}
			if len(args) == 1 {
				key, ok := dates.ParsePreset(args[0])
				if !ok {
					return oo.HandleError(fmt.Errorf("unknown preset %q", args[0]))
				}
				p.Key = key
			}
			if co.Apply {
				if p.Key == "" {
					return oo.HandleError(fmt.Errorf("--apply needs a preset name"))
				}
				ch, err := store.Load(s)
				if err != nil {
					return oo.HandleError(err)
				}
				p.Apply = &apply.Apply{Host: ch, QueryName: co.Column}
			}
			err = p.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddColumnArgs(cmd, co)
	options.AddApplyArg(cmd, co)
	options.AddBoundsArgs(cmd, co)
	options.AddFirstDayArg(cmd, cal)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
