package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dateslicer/pkg/filter"
)

// ColumnOptions names the filtered column and its value bounds.
type ColumnOptions struct {
	Column string
	Apply  bool
	Min    string
	Max    string
}

func AddColumnArgs(cmd *cobra.Command, o *ColumnOptions) {
	cmd.Flags().StringVarP(&o.Column, "column", "c", "",
		`The filtered column, example: --column="Sales.OrderDate".`)
}

func AddApplyArg(cmd *cobra.Command, o *ColumnOptions) {
	cmd.Flags().BoolVar(&o.Apply, "apply", false,
		"Write the range as the slicer's filter on --column.")
}

func AddBoundsArgs(cmd *cobra.Command, o *ColumnOptions) {
	cmd.Flags().StringVar(&o.Min, "min", "",
		"Earliest date in the column; bounds the years and the min date preset.")
	cmd.Flags().StringVar(&o.Max, "max", "",
		"Latest date in the column; bounds the years.")
}

// Values returns the bounds as column values.
func (o *ColumnOptions) Values() []any {
	values := make([]any, 0, 2)
	for _, v := range []string{o.Min, o.Max} {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// MinDate is the earliest bound, or zero.
func (o *ColumnOptions) MinDate(loc *time.Location) time.Time {
	lo, _, ok := filter.Bounds(o.Values(), loc)
	if !ok {
		return time.Time{}
	}
	return lo
}
