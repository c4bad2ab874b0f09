package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/settings"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dateslicer",
		Short: base.Wrap80("A date range slicer: pick a day or a range on a calendar and apply it as a filter."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGrid(topLevel)
	addPreset(topLevel)
	addDays(topLevel)
	addFilter(topLevel)
	addBounds(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// loadSettings reads the config and sets the log level for commands that
// log to stderr.
func loadSettings() (*settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}
	log.SetLevel(log.ParseLevel(s.LogLevel))
	return s, nil
}
