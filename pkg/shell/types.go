// Package shell turns selection state into drawable frames and owns the
// expanded/compact presentation state machine: where the picker content
// lives, whether the compact popup is open, and the document-level click
// listener that dismisses it.
package shell

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/selection"
)

// DisplayMode selects how the picker content is presented.
type DisplayMode int

const (
	// Expanded keeps the content visible inline.
	Expanded DisplayMode = iota
	// Compact hides the content behind a summary control and a popup.
	Compact
)

func (m DisplayMode) String() string {
	switch m {
	case Expanded:
		return "expanded"
	case Compact:
		return "compact"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseDisplayMode reads "expanded" or "compact".
func ParseDisplayMode(s string) (DisplayMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expanded", "":
		return Expanded, true
	case "compact":
		return Compact, true
	}
	return Expanded, false
}

// Location is where the content node is attached.
type Location int

const (
	// Detached content is not shown anywhere.
	Detached Location = iota
	// Inline content is part of the visual body.
	Inline
	// Overlay content floats above the visual in a popup.
	Overlay
)

func (l Location) String() string {
	switch l {
	case Detached:
		return "detached"
	case Inline:
		return "inline"
	case Overlay:
		return "overlay"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// Placeholder is the summary text when nothing is selected.
const Placeholder = "Select date…"

// Frame is everything a surface needs to draw the picker.
type Frame struct {
	Mode    DisplayMode
	Open    bool
	Dense   bool
	Summary string

	ShowSidebar bool
	RangeMode   bool
	Presets     []dates.Preset

	StartText string
	EndText   string
	ShowEnd   bool

	Month time.Month
	Year  int
	// Years is the year picker option list. YearsChanged is set on the
	// frame where the list was rebuilt.
	Years        []int
	YearsChanged bool

	FirstDay time.Weekday
	Headers  [7]string
	Weeks    []dates.Week
}

// Surface draws frames and hosts the content node.
type Surface interface {
	Draw(Frame)
	// Mount moves the content node to loc. The shell calls it only when
	// the owner changes.
	Mount(loc Location)
}

// Target classifies what a document click landed on.
type Target int

const (
	// TargetOutside is anywhere not covered by the picker.
	TargetOutside Target = iota
	// TargetContent is inside the open popup or inline content.
	TargetContent
	// TargetSummary is the compact summary control.
	TargetSummary
)

// Click is a document-level pointer event.
type Click struct {
	Target Target
	X, Y   int
}

// ListenerID identifies a registered click listener.
type ListenerID int

// Document delivers clicks anywhere in the host document.
type Document interface {
	AddClickListener(func(Click)) ListenerID
	RemoveClickListener(ListenerID)
}

// Scheduler runs callbacks after the next paint.
type Scheduler interface {
	NextPaint(func())
}

// Picker is the capability set host wrappers drive.
type Picker interface {
	Render(selection.State)
	SetDisplayMode(DisplayMode)
	Close()
	Destroy()
}
