package printers

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/dateslicer/pkg/dates"
)

const layoutDay = "2006-01-02"

// RangeRecord is the --json form of a resolved range.
type RangeRecord struct {
	Preset string `json:"preset,omitempty"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Days   int    `json:"days"`
}

// NewRangeRecord flattens r to calendar dates.
func NewRangeRecord(r dates.Range) RangeRecord {
	rec := RangeRecord{Days: r.Days()}
	if !r.Start.IsZero() {
		rec.Start = r.Start.Format(layoutDay)
	}
	if !r.End.IsZero() {
		rec.End = r.End.Format(layoutDay)
	}
	return rec
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
