// Package selection owns the slicer's mutable selection state and turns
// user gestures into new state.
package selection

import (
	"fmt"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
)

// Phase tracks progress through the two-click range gesture.
type Phase int

const (
	// AwaitingFirstClick means the next day click starts a new range.
	AwaitingFirstClick Phase = iota
	// AwaitingSecondClick means a start is pending and the next click ends it.
	AwaitingSecondClick
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstClick:
		return "awaiting-first-click"
	case AwaitingSecondClick:
		return "awaiting-second-click"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// yearWindow is the year picker half-width used when data bounds are unknown.
const yearWindow = 10

// Bounds are the data-derived limits of the picker.
type Bounds struct {
	MinDate time.Time
	MaxDate time.Time
	// MinYear and MaxYear override the years derived from the dates when
	// both are set.
	MinYear int
	MaxYear int
}

// Years returns the inclusive year picker bounds. Missing data falls back
// to viewYear±10.
func (b Bounds) Years(viewYear int) (int, int) {
	if b.MinYear != 0 && b.MaxYear != 0 && b.MinYear <= b.MaxYear {
		return b.MinYear, b.MaxYear
	}
	lo, hi := viewYear-yearWindow, viewYear+yearWindow
	if !b.MinDate.IsZero() {
		lo = b.MinDate.Year()
	}
	if !b.MaxDate.IsZero() {
		hi = b.MaxDate.Year()
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// State is a snapshot of the selection. The zero time means "not set".
type State struct {
	ViewYear   int
	ViewMonth  time.Month
	RangeStart time.Time
	RangeEnd   time.Time
	RangeMode  bool
	Phase      Phase
	FirstDay   time.Weekday
	Bounds     Bounds
}

// HasRange reports whether both endpoints are set.
func (s State) HasRange() bool {
	return !s.RangeStart.IsZero() && !s.RangeEnd.IsZero()
}

// Range returns the selected range; ok is false until a start is chosen.
// A missing end collapses to the start.
func (s State) Range() (dates.Range, bool) {
	if s.RangeStart.IsZero() {
		return dates.Range{}, false
	}
	end := s.RangeEnd
	if end.IsZero() {
		end = s.RangeStart
	}
	return dates.Range{Start: s.RangeStart, End: end}, true
}

// Result is what a finalize step reports to the host.
type Result struct {
	RangeStart time.Time
	RangeEnd   time.Time
	RangeMode  bool
	ViewYear   int
	ViewMonth  time.Month
}

// Result snapshots the fields reported to the host.
func (s State) Result() Result {
	return Result{
		RangeStart: s.RangeStart,
		RangeEnd:   s.RangeEnd,
		RangeMode:  s.RangeMode,
		ViewYear:   s.ViewYear,
		ViewMonth:  s.ViewMonth,
	}
}
