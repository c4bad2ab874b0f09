// Package grid prints month grids with a range highlighted.
package grid

import (
	"context"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/printers"
)

// Grid prints every month Range touches, or Month when Range is empty.
type Grid struct {
	Range    dates.Range
	Month    time.Time
	FirstDay time.Weekday
	// Now defaults to time.Now.
	Now func() time.Time

	Printer *printers.PrettyPrint
}

// Do prints the grids.
func (g *Grid) Do(_ context.Context) error {
	pp := g.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	pp.NewLine()
	if g.Range.Start.IsZero() && !g.Month.IsZero() {
		pp.Month(g.Month.Year(), g.Month.Month(), g.FirstDay, g.Range, now)
		return nil
	}
	pp.Calendar(g.Range, g.FirstDay, now)
	if !g.Range.Start.IsZero() {
		pp.Range(g.Range)
	}
	return nil
}
