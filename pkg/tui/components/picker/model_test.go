package picker

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/selection"
	"tableflip.dev/dateslicer/pkg/shell"
	"tableflip.dev/dateslicer/pkg/tui/theme"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC)
}

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type harness struct {
	m     *Model
	shell *shell.Shell
	ctrl  *selection.Controller
}

func newHarness(mode shell.DisplayMode, sidebar bool) *harness {
	m := New(Options{Theme: theme.Default(), Now: fixedNow})
	sh := shell.New(shell.Options{
		Surface:     m,
		Document:    m,
		Scheduler:   m,
		Mode:        mode,
		ShowSidebar: sidebar,
		Now:         fixedNow,
	})
	ctrl := selection.New(selection.Options{
		Initial:  selection.State{RangeMode: true},
		Renderer: sh,
		Now:      fixedNow,
	})
	m.Bind(ctrl, sh)
	ctrl.Refresh()
	return &harness{m: m, shell: sh, ctrl: ctrl}
}

func (h *harness) press(keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		h.m.Update(k)
	}
}

func (h *harness) paint() {
	h.m.Update(paintedMsg{})
}

func (h *harness) click(x, y int) {
	h.m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func (h *harness) view() string {
	v, _ := h.m.View()
	return stripANSI(v)
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	right = tea.KeyPressMsg{Code: tea.KeyRight}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func TestExpandedViewShowsMonth(t *testing.T) {
	h := newHarness(shell.Expanded, true)
	v := h.view()
	for _, want := range []string{"January 2024", "Su", "Presets", "Yesterday", "Date range", "Start:"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
	if h.m.Location() != shell.Inline {
		t.Fatalf("expanded content should be inline, got %s", h.m.Location())
	}
}

func TestKeyboardTwoClickRange(t *testing.T) {
	h := newHarness(shell.Expanded, false)
	if !h.m.Cursor().Equal(time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("cursor should start on today, got %v", h.m.Cursor())
	}
	h.press(right, enter)
	f := h.m.Frame()
	if f.StartText != "01/18/2024" || f.EndText != "" {
		t.Fatalf("first click: %q..%q", f.StartText, f.EndText)
	}
	h.press(down, down)
	if h.m.Frame().Month != time.February {
		t.Fatalf("cursor leaving the month should move the view, got %s", h.m.Frame().Month)
	}
	h.press(enter)
	f = h.m.Frame()
	if f.StartText != "01/18/2024" || f.EndText != "02/01/2024" {
		t.Fatalf("second click: %q..%q", f.StartText, f.EndText)
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	h := newHarness(shell.Expanded, true)
	h.press(char('t'))
	if f := h.m.Frame(); f.StartText != "01/17/2024" || f.EndText != "01/17/2024" {
		t.Fatalf("today: %q..%q", f.StartText, f.EndText)
	}
	h.press(char('1'))
	if f := h.m.Frame(); f.StartText != "01/16/2024" {
		t.Fatalf("preset 1 should be yesterday, got %q", f.StartText)
	}
	h.press(char(']'), char(']'))
	if h.m.Frame().Month != time.March {
		t.Fatalf("expected March, got %s", h.m.Frame().Month)
	}
	h.press(char('<'))
	if h.m.Frame().Month != time.February {
		t.Fatalf("expected February, got %s", h.m.Frame().Month)
	}
	h.press(char('}'))
	if h.m.Frame().Year != 2025 {
		t.Fatalf("expected 2025, got %d", h.m.Frame().Year)
	}
	h.press(char('r'))
	if h.m.Frame().RangeMode || h.m.Frame().ShowEnd {
		t.Fatalf("range mode should be off")
	}
}

func TestTypedInput(t *testing.T) {
	h := newHarness(shell.Expanded, true)
	h.press(char('s'))
	h.m.input.SetValue("03/04/2024")
	h.press(enter)
	f := h.m.Frame()
	if f.StartText != "03/04/2024" || f.Month != time.March {
		t.Fatalf("typed start: %+v", f)
	}

	h.press(char('e'))
	h.m.input.SetValue("02/30/2024")
	h.press(enter)
	if h.m.Frame().EndText != "03/04/2024" {
		t.Fatalf("invalid end should be ignored, got %q", h.m.Frame().EndText)
	}

	h.press(char('+'))
	if h.m.input.Value() != "7" {
		t.Fatalf("days prompt should default to 7, got %q", h.m.input.Value())
	}
	h.press(enter)
	if f := h.m.Frame(); f.StartText != "01/11/2024" || f.EndText != "01/17/2024" {
		t.Fatalf("days up to today: %q..%q", f.StartText, f.EndText)
	}

	h.press(char('-'), esc)
	if h.m.editing != fieldNone {
		t.Fatalf("esc should cancel editing")
	}
}

func TestCompactOpenCloseReleasesListeners(t *testing.T) {
	h := newHarness(shell.Compact, true)
	if !strings.Contains(h.view(), shell.Placeholder) {
		t.Fatalf("closed compact view should show the placeholder:\n%s", h.view())
	}
	for i := 0; i < 2; i++ {
		h.press(char('o'))
		if h.m.Listeners() != 0 {
			t.Fatalf("listener must wait for the next paint")
		}
		h.paint()
		if h.m.Listeners() != 1 || h.m.Location() != shell.Overlay {
			t.Fatalf("open: listeners=%d location=%s", h.m.Listeners(), h.m.Location())
		}
		h.press(char('o'))
		if h.m.Listeners() != 0 || h.m.Location() != shell.Detached {
			t.Fatalf("close: listeners=%d location=%s", h.m.Listeners(), h.m.Location())
		}
	}
}

func TestCompactMouse(t *testing.T) {
	h := newHarness(shell.Compact, false)
	h.click(1, 1)
	if !h.shell.IsOpen() {
		t.Fatalf("clicking the summary should open the popup")
	}
	h.paint()
	if !strings.Contains(h.view(), "January 2024") {
		t.Fatalf("open popup should show the calendar:\n%s", h.view())
	}

	scr := h.m.render()
	h.click(scr.content.X+1, scr.content.Y+1)
	if !h.shell.IsOpen() {
		t.Fatalf("clicking inside the popup must not dismiss it")
	}

	h.click(79, 23)
	if h.shell.IsOpen() || h.m.Listeners() != 0 {
		t.Fatalf("clicking outside should close and release the listener")
	}
}

func TestExpandedMouseDayClick(t *testing.T) {
	h := newHarness(shell.Expanded, false)
	// Row 2 is the first week; column 1 is Monday, January 1st.
	h.click(5, 2)
	if f := h.m.Frame(); f.StartText != "01/01/2024" || f.EndText != "" {
		t.Fatalf("day click: %q..%q", f.StartText, f.EndText)
	}
	// Right arrow on the title row.
	h.click(27, 0)
	if h.m.Frame().Month != time.February {
		t.Fatalf("next arrow should move to February, got %s", h.m.Frame().Month)
	}
}

func TestDetachedIgnoresCalendarKeys(t *testing.T) {
	h := newHarness(shell.Compact, false)
	h.press(char('t'))
	if h.m.Frame().StartText != "" {
		t.Fatalf("closed popup should ignore calendar keys")
	}
	_, cmd := h.m.Update(char('q'))
	if cmd == nil {
		t.Fatalf("q should quit")
	}
}

func TestDayStyleLaysTodayAndCursorOver(t *testing.T) {
	h := newHarness(shell.Expanded, false)
	th := theme.Default().Calendar
	today := time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)
	h.m.cursor = today.AddDate(0, 0, 1)

	st := h.m.dayStyle(dates.Day{Date: today, IsToday: true, IsInRange: true, IsCurrentMonth: true})
	if !st.GetUnderline() {
		t.Fatalf("today should be underlined")
	}
	if st.GetBackground() != th.InRange.GetBackground() {
		t.Fatalf("today should keep its range background")
	}
	if st.GetReverse() {
		t.Fatalf("only the cursor day is reversed")
	}

	st = h.m.dayStyle(dates.Day{Date: h.m.cursor, IsCurrentMonth: true})
	if !st.GetReverse() || st.GetUnderline() {
		t.Fatalf("cursor day should be reversed, not underlined")
	}
}
