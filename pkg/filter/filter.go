// Package filter builds and reads the advanced range filter the slicer
// applies to its host, and derives picker bounds from a column of values.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
)

// Schema is the advanced filter schema URL.
const Schema = "https://powerbi.com/product/schema#advanced"

// Advanced filter type discriminator.
const AdvancedFilterType = 0

// Condition operators understood by the slicer.
const (
	GreaterThanOrEqual = "GreaterThanOrEqual"
	LessThanOrEqual    = "LessThanOrEqual"
)

// ErrNoTarget is returned when a filter is requested without a column.
var ErrNoTarget = errors.New("filter: no column target")

// Target names the filtered column.
type Target struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

func (t Target) String() string {
	return t.Table + "." + t.Column
}

// IsZero reports whether the target is unset.
func (t Target) IsZero() bool { return t.Table == "" && t.Column == "" }

// TargetFromQueryName splits "Table.Column". A bare name is used for both.
func TargetFromQueryName(qn string) (Target, bool) {
	qn = strings.TrimSpace(qn)
	if qn == "" {
		return Target{}, false
	}
	table, column, found := strings.Cut(qn, ".")
	if !found {
		column = table
	}
	return Target{Table: table, Column: column}, true
}

// Condition is one comparison in an advanced filter.
type Condition struct {
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Advanced is the JSON advanced filter.
type Advanced struct {
	Schema          string      `json:"$schema"`
	FilterType      int         `json:"filterType"`
	Target          Target      `json:"target"`
	LogicalOperator string      `json:"logicalOperator"`
	Conditions      []Condition `json:"conditions"`
}

// EndOfDay returns 23:59:59.999 on d's day.
func EndOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), d.Location())
}

// NewRange builds the inclusive filter for [start, end]. A zero end uses
// start.
func NewRange(target Target, start, end time.Time) (Advanced, error) {
	if target.IsZero() {
		return Advanced{}, ErrNoTarget
	}
	if start.IsZero() {
		return Advanced{}, errors.New("filter: range has no start")
	}
	if end.IsZero() {
		end = start
	}
	r := dates.NewRange(start, end)
	return Advanced{
		Schema:          Schema,
		FilterType:      AdvancedFilterType,
		Target:          target,
		LogicalOperator: "And",
		Conditions: []Condition{
			{Operator: GreaterThanOrEqual, Value: dates.FormatISO(r.Start)},
			{Operator: LessThanOrEqual, Value: dates.FormatISO(EndOfDay(r.End))},
		},
	}, nil
}

// Range reads the start and end back out of the filter, normalized to
// midnight in loc. Unparsable values are skipped.
func (a Advanced) Range(loc *time.Location) (start, end time.Time, ok bool) {
	for _, c := range a.Conditions {
		switch c.Operator {
		case GreaterThanOrEqual:
			if d, ok := dates.ParseISO(c.Value, loc); ok {
				start = d
			}
		case LessThanOrEqual:
			if d, ok := dates.ParseISO(c.Value, loc); ok {
				end = d
			}
		}
	}
	return start, end, !start.IsZero() || !end.IsZero()
}

// Marshal renders the filter as indented JSON.
func (a Advanced) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("filter: marshal: %w", err)
	}
	return b, nil
}

// Unmarshal parses a filter.
func Unmarshal(b []byte) (Advanced, error) {
	var a Advanced
	if err := json.Unmarshal(b, &a); err != nil {
		return Advanced{}, fmt.Errorf("filter: unmarshal: %w", err)
	}
	return a, nil
}
