package shell

import (
	"testing"
	"time"

	"tableflip.dev/dateslicer/pkg/selection"
)

type fakeSurface struct {
	frames []Frame
	mounts []Location
}

func (f *fakeSurface) Draw(fr Frame)      { f.frames = append(f.frames, fr) }
func (f *fakeSurface) Mount(loc Location) { f.mounts = append(f.mounts, loc) }

func (f *fakeSurface) last() Frame { return f.frames[len(f.frames)-1] }

type fakeDocument struct {
	next      ListenerID
	listeners map[ListenerID]func(Click)
	added     int
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{listeners: make(map[ListenerID]func(Click))}
}

func (d *fakeDocument) AddClickListener(fn func(Click)) ListenerID {
	d.next++
	d.added++
	d.listeners[d.next] = fn
	return d.next
}

func (d *fakeDocument) RemoveClickListener(id ListenerID) {
	delete(d.listeners, id)
}

func (d *fakeDocument) click(target Target) {
	for _, fn := range d.listeners {
		fn(Click{Target: target})
	}
}

type fakeScheduler struct {
	queue []func()
}

func (s *fakeScheduler) NextPaint(fn func()) { s.queue = append(s.queue, fn) }

func (s *fakeScheduler) flush() {
	q := s.queue
	s.queue = nil
	for _, fn := range q {
		fn()
	}
}

func newShell(mode DisplayMode) (*Shell, *fakeSurface, *fakeDocument, *fakeScheduler) {
	surf := &fakeSurface{}
	doc := newFakeDocument()
	sched := &fakeScheduler{}
	s := New(Options{
		Surface:     surf,
		Document:    doc,
		Scheduler:   sched,
		Mode:        mode,
		ShowSidebar: true,
		Now:         func() time.Time { return time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC) },
	})
	return s, surf, doc, sched
}

func state() selection.State {
	return selection.State{
		ViewYear:   2024,
		ViewMonth:  time.January,
		RangeStart: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		RangeMode:  true,
	}
}

func TestOpenCloseTwiceLeavesNoListeners(t *testing.T) {
	s, _, doc, sched := newShell(Compact)
	s.Render(state())

	for i := 0; i < 2; i++ {
		s.Open()
		s.Open()
		sched.flush()
		if len(doc.listeners) != 1 {
			t.Fatalf("round %d: expected exactly one listener, got %d", i, len(doc.listeners))
		}
		s.Close()
		if len(doc.listeners) != 0 {
			t.Fatalf("round %d: listener leaked after close", i)
		}
	}
	if doc.added != 2 {
		t.Fatalf("expected two registrations in total, got %d", doc.added)
	}
}

func TestCloseBeforePaintCancelsRegistration(t *testing.T) {
	s, _, doc, sched := newShell(Compact)
	s.Open()
	s.Close()
	s.Open()
	sched.flush()
	if len(doc.listeners) != 1 || doc.added != 1 {
		t.Fatalf("expected a single registration, got %d live / %d added", len(doc.listeners), doc.added)
	}
	s.Close()
	sched.flush()
	if len(doc.listeners) != 0 {
		t.Fatalf("expected no listeners, got %d", len(doc.listeners))
	}
}

func TestOpeningClickDoesNotDismiss(t *testing.T) {
	s, _, doc, sched := newShell(Compact)
	s.Toggle()
	doc.click(TargetOutside) // same gesture bubbling up
	if !s.IsOpen() {
		t.Fatalf("popup should survive the click that opened it")
	}
	sched.flush()
	doc.click(TargetContent)
	if !s.IsOpen() {
		t.Fatalf("clicks inside the popup must not close it")
	}
	doc.click(TargetOutside)
	if s.IsOpen() || s.Listening() {
		t.Fatalf("outside click should close and deregister")
	}
}

func TestContentHasSingleOwner(t *testing.T) {
	s, surf, _, sched := newShell(Compact)
	if s.Owner() != Detached {
		t.Fatalf("compact content starts detached, got %s", s.Owner())
	}
	s.Open()
	sched.flush()
	if s.Owner() != Overlay {
		t.Fatalf("open content lives in the overlay, got %s", s.Owner())
	}
	s.SetDisplayMode(Expanded)
	if s.Owner() != Inline || s.IsOpen() || s.Listening() {
		t.Fatalf("leaving compact must close and move inline: owner=%s open=%v", s.Owner(), s.IsOpen())
	}
	for i := 1; i < len(surf.mounts); i++ {
		if surf.mounts[i] == surf.mounts[i-1] {
			t.Fatalf("redundant mount %v", surf.mounts)
		}
	}
	want := []Location{Overlay, Inline}
	if len(surf.mounts) != len(want) {
		t.Fatalf("unexpected mounts %v", surf.mounts)
	}
	for i := range want {
		if surf.mounts[i] != want[i] {
			t.Fatalf("unexpected mounts %v", surf.mounts)
		}
	}
}

func TestExpandedIgnoresOpen(t *testing.T) {
	s, _, doc, sched := newShell(Expanded)
	s.Open()
	sched.flush()
	if s.IsOpen() || len(doc.listeners) != 0 {
		t.Fatalf("expanded mode has no popup")
	}
	if s.Owner() != Inline {
		t.Fatalf("expanded content is inline, got %s", s.Owner())
	}
}

func TestDestroyReleasesListener(t *testing.T) {
	s, _, doc, sched := newShell(Compact)
	s.Open()
	sched.flush()
	s.Destroy()
	if len(doc.listeners) != 0 {
		t.Fatalf("destroy leaked a listener")
	}
	if s.Owner() != Detached {
		t.Fatalf("destroy should detach the content")
	}
	s.Open()
	sched.flush()
	if len(doc.listeners) != 0 || s.IsOpen() {
		t.Fatalf("destroyed shell must stay inert")
	}
}

func TestRenderFrame(t *testing.T) {
	s, surf, _, _ := newShell(Expanded)
	st := state()
	st.FirstDay = time.Monday
	s.Render(st)
	f := surf.last()
	if f.StartText != "01/10/2024" || f.EndText != "01/20/2024" || !f.ShowEnd {
		t.Fatalf("unexpected fields %+v", f)
	}
	if f.Summary != "01/10/2024 — 01/20/2024" {
		t.Fatalf("unexpected summary %q", f.Summary)
	}
	if f.Headers[0] != "Mon" {
		t.Fatalf("expected monday header first, got %v", f.Headers)
	}
	if len(f.Weeks) < 4 || f.Weeks[0][0].Date.Weekday() != time.Monday {
		t.Fatalf("unexpected grid")
	}
	if !f.YearsChanged || f.Years[0] != 2014 || f.Years[len(f.Years)-1] != 2034 {
		t.Fatalf("unexpected years %v", f.Years)
	}

	s.Render(st)
	if surf.last().YearsChanged {
		t.Fatalf("year list rebuilt without a bounds change")
	}

	st.Bounds = selection.Bounds{MinYear: 2020, MaxYear: 2022}
	s.Render(st)
	if f := surf.last(); !f.YearsChanged || len(f.Years) != 3 {
		t.Fatalf("year list should rebuild on new bounds, got %v", f.Years)
	}

	st.RangeMode = false
	s.Render(st)
	if surf.last().ShowEnd {
		t.Fatalf("end field hidden outside range mode")
	}
}

func TestSummary(t *testing.T) {
	st := selection.State{}
	if got := Summary(st); got != Placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	st.RangeStart = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := Summary(st); got != "03/05/2024" {
		t.Fatalf("pending selection shows start, got %q", got)
	}
	st.RangeEnd = st.RangeStart
	if got := Summary(st); got != "03/05/2024" {
		t.Fatalf("single day shows one date, got %q", got)
	}
}

func TestSetCompactRedraws(t *testing.T) {
	s, surf, _, _ := newShell(Expanded)
	s.SetCompact(true)
	if len(surf.frames) != 0 {
		t.Fatalf("nothing to redraw before first render")
	}
	s.Render(state())
	s.SetCompact(true)
	if !surf.last().Dense {
		t.Fatalf("dense flag not drawn")
	}
	n := len(surf.frames)
	s.SetCompact(true)
	if len(surf.frames) != n {
		t.Fatalf("unchanged density should not redraw")
	}
}
