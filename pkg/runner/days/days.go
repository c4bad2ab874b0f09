// Package days resolves the "N days up to today" and "N days starting
// today" shortcuts.
package days

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/runner/apply"
)

// Days prints an N-day range ending or starting today.
type Days struct {
	N             int
	StartingToday bool
	JSON          bool
	Apply         *apply.Apply
	// Now defaults to time.Now.
	Now func() time.Time

	Printer *printers.PrettyPrint
}

// Do resolves and prints. N must be positive.
func (d *Days) Do(_ context.Context) error {
	if d.N <= 0 {
		return fmt.Errorf("days must be positive, got %d", d.N)
	}
	pp := d.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	r := dates.DaysUpToToday(d.N, now)
	title := fmt.Sprintf("%d days up to today", d.N)
	if d.StartingToday {
		r = dates.DaysStartingToday(d.N, now)
		title = fmt.Sprintf("%d days starting today", d.N)
	}
	if err := apply.Maybe(d.Apply, r); err != nil {
		return err
	}
	if d.JSON {
		return pp.JSON(printers.NewRangeRecord(r))
	}
	pp.Title(title)
	pp.Range(r)
	return nil
}
