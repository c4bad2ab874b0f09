// Package apply writes a resolved range to the filter channel the same way
// the interactive slicer does.
package apply

import (
	"errors"
	"fmt"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/visual"
)

// Apply targets one column on a filter channel.
type Apply struct {
	Host visual.Host
	// QueryName is the bound column, "Table.Column".
	QueryName string
}

// Range builds the inclusive filter for r and merges it into the
// slicer's slot.
func (a *Apply) Range(r dates.Range) (filter.Advanced, error) {
	if a.Host == nil {
		return filter.Advanced{}, errors.New("can not apply, no persistence")
	}
	target, ok := filter.TargetFromQueryName(a.QueryName)
	if !ok {
		return filter.Advanced{}, filter.ErrNoTarget
	}
	f, err := filter.NewRange(target, r.Start, r.End)
	if err != nil {
		return filter.Advanced{}, err
	}
	if err := a.Host.ApplyFilter(visual.FilterName, f); err != nil {
		return filter.Advanced{}, fmt.Errorf("apply filter to %s: %w", target, err)
	}
	log.Debug("applied filter", "target", target.String(), "range", r.String())
	return f, nil
}

// Maybe applies r when a is set and is a no-op otherwise.
func Maybe(a *Apply, r dates.Range) error {
	if a == nil {
		return nil
	}
	_, err := a.Range(r)
	return err
}
