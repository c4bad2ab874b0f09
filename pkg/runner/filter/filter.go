// Package filter shows and clears the filters stored on the channel.
package filter

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/store"
)

// Filter lists the stored filters, or clears Name when Clear is set.
type Filter struct {
	Persistence store.Channel
	// Name limits the command to one slot. Empty means all slots.
	Name  string
	Clear bool
	JSON  bool

	Printer *printers.PrettyPrint
}

// Do runs the command.
func (f *Filter) Do(ctx context.Context) error {
	if f.Persistence == nil {
		return errors.New("can not get filters, no persistence")
	}
	pp := f.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	if f.Clear {
		name := f.Name
		if name == "" {
			name = store.GeneralFilter
		}
		return f.Persistence.ClearFilter(name)
	}

	var all []filter.Advanced
	if f.Name != "" {
		one, err := f.Persistence.Filter(f.Name)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return err
		default:
			all = append(all, one)
		}
	} else {
		var err error
		if all, err = f.Persistence.Filters(ctx); err != nil {
			return err
		}
	}

	if f.JSON {
		if all == nil {
			all = []filter.Advanced{}
		}
		return pp.JSON(all)
	}
	pp.NewLine()
	pp.Title("Filters")
	pp.Filters(time.Local, all...)
	return nil
}
