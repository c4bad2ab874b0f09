package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/dateslicer/pkg/settings"
	"tableflip.dev/dateslicer/pkg/shell"
)

// CalendarOptions override the configured calendar settings.
type CalendarOptions struct {
	FirstDay  string
	Mode      string
	NoSidebar bool
}

func AddFirstDayArg(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVar(&o.FirstDay, "first-day", "",
		"First day of the week, sunday or monday. Defaults to the config.")
}

func AddDisplayArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		"Display mode, expanded or compact. Defaults to the config.")
	cmd.Flags().BoolVar(&o.NoSidebar, "no-sidebar", false,
		"Hide the preset sidebar.")
}

// Apply writes the flags that were given over s.
func (o *CalendarOptions) Apply(s *settings.Settings) error {
	if o.FirstDay != "" {
		fd, ok := settings.ParseFirstDay(o.FirstDay)
		if !ok {
			return fmt.Errorf("--first-day: unsupported value %q", o.FirstDay)
		}
		s.Calendar.FirstDayOfWeek = fd
	}
	if o.Mode != "" {
		m, ok := shell.ParseDisplayMode(o.Mode)
		if !ok {
			return fmt.Errorf("--mode: unsupported value %q", o.Mode)
		}
		s.Calendar.DisplayMode = m
	}
	if o.NoSidebar {
		s.Calendar.ShowSidebar = false
	}
	return nil
}
