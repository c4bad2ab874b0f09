package selection

import (
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
)

// Renderer redraws the picker from a state snapshot.
type Renderer interface {
	Render(State)
}

// Notifier receives the selection whenever a gesture completes a range.
type Notifier interface {
	Notify(Result)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(State)

// Render implements Renderer.
func (f RendererFunc) Render(s State) { f(s) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Result)

// Notify implements Notifier.
func (f NotifierFunc) Notify(r Result) { f(r) }

// Options configures a Controller.
type Options struct {
	// Initial seeds the state. A zero ViewYear starts on the current month.
	Initial  State
	Renderer Renderer
	Notifier Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

// Controller applies gestures to the selection state. It is not safe for
// concurrent use; hosts call it from their event loop.
type Controller struct {
	state    State
	renderer Renderer
	notifier Notifier
	now      func() time.Time
}

// New constructs a controller. It does not render.
func New(opts Options) *Controller {
	c := &Controller{
		state:    opts.Initial,
		renderer: opts.Renderer,
		notifier: opts.Notifier,
		now:      opts.Now,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.state.ViewYear == 0 {
		t := dates.Today(c.now())
		c.state.ViewYear, c.state.ViewMonth = t.Year(), t.Month()
	}
	if c.state.ViewMonth < time.January || c.state.ViewMonth > time.December {
		c.state.ViewMonth = time.January
	}
	if c.state.FirstDay != time.Monday {
		c.state.FirstDay = time.Sunday
	}
	if !c.state.RangeStart.IsZero() {
		c.state.RangeStart = dates.StripTime(c.state.RangeStart)
	}
	if !c.state.RangeEnd.IsZero() {
		c.state.RangeEnd = dates.StripTime(c.state.RangeEnd)
	}
	if c.state.HasRange() && c.state.RangeEnd.Before(c.state.RangeStart) {
		c.state.RangeStart, c.state.RangeEnd = c.state.RangeEnd, c.state.RangeStart
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// SetRenderer replaces the renderer.
func (c *Controller) SetRenderer(r Renderer) { c.renderer = r }

// SetNotifier replaces the notifier.
func (c *Controller) SetNotifier(n Notifier) { c.notifier = n }

// SetBounds records new data bounds and re-renders.
func (c *Controller) SetBounds(b Bounds) {
	c.state.Bounds = b
	c.render()
}

// SetFirstDay changes the week start and re-renders.
func (c *Controller) SetFirstDay(fd time.Weekday) {
	if fd != time.Monday {
		fd = time.Sunday
	}
	c.state.FirstDay = fd
	c.render()
}

// Refresh re-renders without changing state.
func (c *Controller) Refresh() { c.render() }

// ClickDay handles a click on a grid cell.
func (c *Controller) ClickDay(d time.Time) {
	d = dates.StripTime(d)
	if !c.state.RangeMode {
		c.state.RangeStart, c.state.RangeEnd = d, d
		c.finalize()
		return
	}
	switch c.state.Phase {
	case AwaitingFirstClick:
		c.state.RangeStart = d
		c.state.RangeEnd = time.Time{}
		c.state.Phase = AwaitingSecondClick
		c.render()
	default:
		if !c.state.RangeStart.IsZero() && d.Before(c.state.RangeStart) {
			c.state.RangeEnd = c.state.RangeStart
			c.state.RangeStart = d
		} else {
			if c.state.RangeStart.IsZero() {
				c.state.RangeStart = d
			}
			c.state.RangeEnd = d
		}
		c.state.Phase = AwaitingFirstClick
		c.finalize()
	}
}

// Preset applies a named preset.
func (c *Controller) Preset(key dates.Preset) {
	c.SetRange(dates.PresetRange(key, c.state.FirstDay, c.state.Bounds.MinDate, c.now()))
}

// Today is the preset "today".
func (c *Controller) Today() { c.Preset(dates.TodayKey) }

// DaysUpToToday selects the n days ending today. n < 1 is ignored.
func (c *Controller) DaysUpToToday(n int) {
	if n < 1 {
		return
	}
	c.SetRange(dates.DaysUpToToday(n, c.now()))
}

// DaysStartingToday selects the n days starting today. n < 1 is ignored.
func (c *Controller) DaysStartingToday(n int) {
	if n < 1 {
		return
	}
	c.SetRange(dates.DaysStartingToday(n, c.now()))
}

// SetRange selects r, jumps the view to its start and finalizes.
func (c *Controller) SetRange(r dates.Range) {
	r = dates.NewRange(r.Start, r.End)
	c.state.RangeStart, c.state.RangeEnd = r.Start, r.End
	c.state.ViewYear, c.state.ViewMonth = r.Start.Year(), r.Start.Month()
	c.state.Phase = AwaitingFirstClick
	c.finalize()
}

// Adopt takes over a selection made elsewhere: the mode and the range
// change together and the host hears about it once. Outside range mode the
// end collapses onto the start.
func (c *Controller) Adopt(rangeMode bool, r dates.Range) {
	r = dates.NewRange(r.Start, r.End)
	if !rangeMode {
		r.End = r.Start
	}
	c.state.RangeMode = rangeMode
	c.state.RangeStart, c.state.RangeEnd = r.Start, r.End
	c.state.ViewYear, c.state.ViewMonth = r.Start.Year(), r.Start.Month()
	c.state.Phase = AwaitingFirstClick
	c.finalize()
}

// Seed restores a persisted selection. It neither renders nor notifies.
func (c *Controller) Seed(r dates.Range) {
	if r.Start.IsZero() {
		return
	}
	if r.End.IsZero() {
		r.Start = dates.StripTime(r.Start)
	} else {
		r = dates.NewRange(r.Start, r.End)
	}
	c.state.RangeStart, c.state.RangeEnd = r.Start, r.End
	c.state.ViewYear, c.state.ViewMonth = r.Start.Year(), r.Start.Month()
	c.state.Phase = AwaitingFirstClick
}

// NavigateMonth moves the view by delta months. The selection is untouched
// and nothing is reported to the host.
func (c *Controller) NavigateMonth(delta int) {
	m := int(c.state.ViewMonth) - 1 + delta
	y := c.state.ViewYear + m/12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	c.state.ViewYear, c.state.ViewMonth = y, time.Month(m+1)
	c.render()
}

// SelectMonth shows the given month of the current view year.
func (c *Controller) SelectMonth(m time.Month) {
	if m < time.January || m > time.December {
		return
	}
	c.state.ViewMonth = m
	c.render()
}

// SelectYear shows the current view month of year y.
func (c *Controller) SelectYear(y int) {
	if y < 1 {
		return
	}
	c.state.ViewYear = y
	c.render()
}

// InputStart applies typed start text. Unparsable text is ignored.
func (c *Controller) InputStart(s string) {
	d, ok := dates.ParseDate(s, c.location())
	if !ok {
		return
	}
	c.state.RangeStart = d
	if c.state.RangeEnd.IsZero() || d.After(c.state.RangeEnd) {
		c.state.RangeEnd = d
	}
	c.state.ViewYear, c.state.ViewMonth = d.Year(), d.Month()
	c.state.Phase = AwaitingFirstClick
	c.finalize()
}

// InputEnd applies typed end text. Unparsable text is ignored. The view
// does not move.
func (c *Controller) InputEnd(s string) {
	d, ok := dates.ParseDate(s, c.location())
	if !ok {
		return
	}
	c.state.RangeEnd = d
	if c.state.RangeStart.IsZero() || d.Before(c.state.RangeStart) {
		c.state.RangeStart = d
	}
	c.state.Phase = AwaitingFirstClick
	c.finalize()
}

// SetRangeMode switches between range and single-day selection. Leaving
// range mode collapses the end onto the start.
func (c *Controller) SetRangeMode(enabled bool) {
	c.state.RangeMode = enabled
	if !enabled && !c.state.RangeStart.IsZero() {
		c.state.RangeEnd = c.state.RangeStart
	}
	c.state.Phase = AwaitingFirstClick
	c.finalize()
}

func (c *Controller) location() *time.Location {
	return c.now().Location()
}

func (c *Controller) render() {
	if c.renderer != nil {
		c.renderer.Render(c.state)
	}
}

func (c *Controller) finalize() {
	c.render()
	if c.notifier != nil {
		c.notifier.Notify(c.state.Result())
	}
}
