// Package preset resolves the sidebar presets from the command line.
package preset

import (
	"context"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/runner/apply"
)

// Preset prints one preset's range, or the whole preset table when Key is
// empty.
type Preset struct {
	Key      dates.Preset
	FirstDay time.Weekday
	MinDate  time.Time
	JSON     bool
	// Apply, when set, writes the resolved range as the slicer's filter.
	Apply *apply.Apply
	// Now defaults to time.Now.
	Now func() time.Time

	Printer *printers.PrettyPrint
}

// Do resolves and prints.
func (p *Preset) Do(_ context.Context) error {
	pp := p.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	if p.Key == "" {
		if p.JSON {
			all := make([]printers.RangeRecord, 0, len(dates.Presets()))
			for _, key := range dates.Presets() {
				rec := printers.NewRangeRecord(dates.PresetRange(key, p.FirstDay, p.MinDate, now))
				rec.Preset = string(key)
				all = append(all, rec)
			}
			return pp.JSON(all)
		}
		pp.NewLine()
		pp.Title("Presets")
		pp.Presets(p.FirstDay, p.MinDate, now)
		return nil
	}

	r := dates.PresetRange(p.Key, p.FirstDay, p.MinDate, now)
	if err := apply.Maybe(p.Apply, r); err != nil {
		return err
	}
	if p.JSON {
		rec := printers.NewRangeRecord(r)
		rec.Preset = string(p.Key)
		return pp.JSON(rec)
	}
	pp.Title(p.Key.Label())
	pp.Range(r)
	return nil
}
