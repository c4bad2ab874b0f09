package shell

import (
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/selection"
)

// Options configures a Shell.
type Options struct {
	Surface     Surface
	Document    Document
	Scheduler   Scheduler
	Mode        DisplayMode
	ShowSidebar bool
	// Now defaults to time.Now and only marks today's cell.
	Now func() time.Time
}

// Shell implements Picker over a Surface.
type Shell struct {
	surface   Surface
	document  Document
	scheduler Scheduler
	now       func() time.Time

	mode        DisplayMode
	open        bool
	dense       bool
	showSidebar bool
	owner       Location
	destroyed   bool

	listener    ListenerID
	listening   bool
	pendingOpen uint64 // generation of the scheduled registration, 0 if none
	generation  uint64

	cachedMinYear int
	cachedMaxYear int
	years         []int

	state    selection.State
	rendered bool
}

var _ Picker = (*Shell)(nil)
var _ selection.Renderer = (*Shell)(nil)

// New mounts the content for the initial mode. It does not draw until the
// first Render.
func New(opts Options) *Shell {
	s := &Shell{
		surface:     opts.Surface,
		document:    opts.Document,
		scheduler:   opts.Scheduler,
		now:         opts.Now,
		mode:        opts.Mode,
		showSidebar: opts.ShowSidebar,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.mount(s.restingLocation())
	return s
}

// Mode returns the display mode.
func (s *Shell) Mode() DisplayMode { return s.mode }

// IsOpen reports whether the compact popup is open.
func (s *Shell) IsOpen() bool { return s.open }

// Owner returns where the content node currently lives.
func (s *Shell) Owner() Location { return s.owner }

// Listening reports whether the outside-click listener is registered.
func (s *Shell) Listening() bool { return s.listening }

// Render draws st.
func (s *Shell) Render(st selection.State) {
	if s.destroyed {
		return
	}
	s.state = st
	s.rendered = true
	s.draw(true)
}

// SetShowSidebar toggles the preset sidebar.
func (s *Shell) SetShowSidebar(show bool) {
	s.showSidebar = show
	s.redraw()
}

// SetCompact toggles the dense layout. It changes nothing but looks.
func (s *Shell) SetCompact(dense bool) {
	if s.dense == dense {
		return
	}
	s.dense = dense
	s.redraw()
}

// SetDisplayMode switches modes. Leaving Compact closes the popup.
func (s *Shell) SetDisplayMode(m DisplayMode) {
	if s.destroyed || m == s.mode {
		return
	}
	prev := s.mode
	s.mode = m
	if prev == Compact {
		s.close()
	}
	s.mount(s.restingLocation())
	s.redraw()
}

// Open shows the compact popup. It is a no-op in Expanded mode or when
// already open.
func (s *Shell) Open() {
	if s.destroyed || s.mode != Compact || s.open {
		return
	}
	s.open = true
	s.mount(Overlay)
	s.scheduleListener()
	s.redraw()
}

// Close hides the compact popup.
func (s *Shell) Close() {
	if s.destroyed || !s.open {
		return
	}
	s.close()
	s.redraw()
}

// Toggle is the summary control click.
func (s *Shell) Toggle() {
	if s.open {
		s.Close()
		return
	}
	s.Open()
}

// CloseButton is the explicit dismiss affordance.
func (s *Shell) CloseButton() { s.Close() }

// Destroy releases the listener and detaches the content. The shell is
// inert afterwards.
func (s *Shell) Destroy() {
	if s.destroyed {
		return
	}
	s.close()
	s.mount(Detached)
	s.destroyed = true
}

func (s *Shell) close() {
	s.open = false
	s.pendingOpen = 0
	s.removeListener()
	s.mount(s.restingLocation())
}

func (s *Shell) restingLocation() Location {
	if s.mode == Expanded {
		return Inline
	}
	return Detached
}

func (s *Shell) mount(loc Location) {
	if s.owner == loc {
		return
	}
	s.owner = loc
	if s.surface != nil {
		s.surface.Mount(loc)
	}
}

// scheduleListener registers the outside-click listener after the next
// paint so the click that opened the popup cannot also close it.
func (s *Shell) scheduleListener() {
	if s.document == nil || s.listening {
		return
	}
	s.generation++
	gen := s.generation
	s.pendingOpen = gen
	if s.scheduler == nil {
		s.registerListener(gen)
		return
	}
	s.scheduler.NextPaint(func() { s.registerListener(gen) })
}

func (s *Shell) registerListener(gen uint64) {
	if s.destroyed || !s.open || s.listening || s.pendingOpen != gen {
		return
	}
	s.pendingOpen = 0
	s.listener = s.document.AddClickListener(s.onDocumentClick)
	s.listening = true
}

func (s *Shell) removeListener() {
	if !s.listening {
		return
	}
	s.document.RemoveClickListener(s.listener)
	s.listening = false
	s.listener = 0
}

func (s *Shell) onDocumentClick(c Click) {
	if c.Target == TargetOutside {
		s.Close()
	}
}

func (s *Shell) redraw() {
	if s.rendered && !s.destroyed {
		s.draw(false)
	}
}

func (s *Shell) draw(stateChanged bool) {
	if s.surface == nil {
		return
	}
	st := s.state
	f := Frame{
		Mode:        s.mode,
		Open:        s.open,
		Dense:       s.dense,
		Summary:     Summary(st),
		ShowSidebar: s.showSidebar,
		RangeMode:   st.RangeMode,
		Presets:     dates.Presets(),
		ShowEnd:     st.RangeMode,
		Month:       st.ViewMonth,
		Year:        st.ViewYear,
		FirstDay:    st.FirstDay,
		Headers:     dates.WeekdayHeaders(st.FirstDay),
		Weeks:       dates.MonthGrid(st.ViewYear, st.ViewMonth, st.FirstDay, st.RangeStart, st.RangeEnd, s.now()),
	}
	if !st.RangeStart.IsZero() {
		f.StartText = dates.FormatDate(st.RangeStart)
	}
	if !st.RangeEnd.IsZero() {
		f.EndText = dates.FormatDate(st.RangeEnd)
	}
	if stateChanged {
		f.YearsChanged = s.refreshYears(st)
	}
	f.Years = s.years
	s.surface.Draw(f)
}

// refreshYears rebuilds the year list only when the bounds moved.
func (s *Shell) refreshYears(st selection.State) bool {
	lo, hi := st.Bounds.Years(st.ViewYear)
	if s.years != nil && lo == s.cachedMinYear && hi == s.cachedMaxYear {
		return false
	}
	s.cachedMinYear, s.cachedMaxYear = lo, hi
	s.years = make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		s.years = append(s.years, y)
	}
	return true
}

// Summary is the compact control label for st.
func Summary(st selection.State) string {
	switch {
	case st.RangeStart.IsZero():
		return Placeholder
	case st.RangeEnd.IsZero() || dates.IsSameDay(st.RangeStart, st.RangeEnd):
		return dates.FormatDate(st.RangeStart)
	default:
		return dates.FormatDate(st.RangeStart) + " — " + dates.FormatDate(st.RangeEnd)
	}
}
