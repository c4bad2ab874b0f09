// Package picker is the terminal surface for the date slicer. It draws the
// frames the shell hands it, plays the part of the host document for
// outside-click dismissal, and turns keys and mouse clicks into gestures.
package picker

import (
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/shell"
	"tableflip.dev/dateslicer/pkg/tui/theme"
)

// DefaultDays seeds the N-day prompts.
const DefaultDays = 7

// Gestures is what the picker drives on the selection controller.
type Gestures interface {
	ClickDay(time.Time)
	Preset(dates.Preset)
	Today()
	DaysUpToToday(int)
	DaysStartingToday(int)
	NavigateMonth(int)
	SelectMonth(time.Month)
	SelectYear(int)
	InputStart(string)
	InputEnd(string)
	SetRangeMode(bool)
}

// Popup is what the picker drives on the shell.
type Popup interface {
	Toggle()
	CloseButton()
	IsOpen() bool
}

// Options configures a Model.
type Options struct {
	Theme theme.Theme
	// Now defaults to time.Now.
	Now func() time.Time
}

type field int

const (
	fieldNone field = iota
	fieldStart
	fieldEnd
	fieldDaysUp
	fieldDaysStart
)

func (f field) label() string {
	switch f {
	case fieldStart:
		return "Start: "
	case fieldEnd:
		return "End: "
	case fieldDaysUp:
		return "Days up to today: "
	case fieldDaysStart:
		return "Days starting today: "
	}
	return ""
}

// paintedMsg runs the callbacks queued with NextPaint.
type paintedMsg struct{}

// Model implements shell.Surface, shell.Document and shell.Scheduler.
type Model struct {
	gestures Gestures
	popup    Popup
	theme    theme.Theme
	keys     keyMap
	help     help.Model
	now      func() time.Time

	frame    shell.Frame
	drawn    bool
	location shell.Location
	cursor   time.Time

	listeners    map[shell.ListenerID]func(shell.Click)
	nextListener shell.ListenerID
	pending      []func()

	editing field
	input   textinput.Model
	days    map[field]int

	width  int
	height int
}

var (
	_ shell.Surface   = (*Model)(nil)
	_ shell.Document  = (*Model)(nil)
	_ shell.Scheduler = (*Model)(nil)
	_ tea.Model       = (*Model)(nil)
)

// New builds an unbound picker. Call Bind before running it.
func New(opts Options) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 10
	input.SetWidth(12)

	m := &Model{
		theme:     opts.Theme,
		keys:      defaultKeys(),
		help:      help.New(),
		now:       opts.Now,
		listeners: make(map[shell.ListenerID]func(shell.Click)),
		input:     input,
		days:      map[field]int{fieldDaysUp: DefaultDays, fieldDaysStart: DefaultDays},
		width:     80,
		height:    24,
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Bind connects the picker to the controller and the shell.
func (m *Model) Bind(g Gestures, p Popup) {
	m.gestures = g
	m.popup = p
}

// Draw implements shell.Surface.
func (m *Model) Draw(f shell.Frame) {
	m.frame = f
	m.drawn = true
	m.syncCursor()
}

// Mount implements shell.Surface.
func (m *Model) Mount(loc shell.Location) { m.location = loc }

// Location is where the shell last mounted the content.
func (m *Model) Location() shell.Location { return m.location }

// Frame is the last frame drawn.
func (m *Model) Frame() shell.Frame { return m.frame }

// Cursor is the day under the keyboard cursor.
func (m *Model) Cursor() time.Time { return m.cursor }

// AddClickListener implements shell.Document.
func (m *Model) AddClickListener(fn func(shell.Click)) shell.ListenerID {
	m.nextListener++
	m.listeners[m.nextListener] = fn
	return m.nextListener
}

// RemoveClickListener implements shell.Document.
func (m *Model) RemoveClickListener(id shell.ListenerID) { delete(m.listeners, id) }

// Listeners is the number of registered document click listeners.
func (m *Model) Listeners() int { return len(m.listeners) }

// NextPaint implements shell.Scheduler. Callbacks run on a message that
// arrives after the current update has been handled.
func (m *Model) NextPaint(fn func()) { m.pending = append(m.pending, fn) }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case paintedMsg:
		fns := m.pending
		m.pending = nil
		for _, fn := range fns {
			fn()
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			cmd = m.click(msg.X, msg.Y)
		}
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	default:
		if m.editing != fieldNone {
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, m.afterUpdate(cmd)
}

func (m *Model) afterUpdate(cmd tea.Cmd) tea.Cmd {
	if len(m.pending) == 0 {
		return cmd
	}
	return tea.Batch(cmd, func() tea.Msg { return paintedMsg{} })
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	return m.render().view, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.editing != fieldNone {
		return m.handleEditKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Popup):
		if m.popup != nil {
			m.popup.Toggle()
		}
		return nil
	case key.Matches(msg, m.keys.Close):
		if m.popup != nil {
			m.popup.CloseButton()
		}
		return nil
	}
	if !m.contentVisible() || m.gestures == nil {
		return nil
	}

	f := m.frame
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, m.keys.Click):
		m.gestures.ClickDay(m.cursor)
	case key.Matches(msg, m.keys.PrevMonth):
		m.gestures.NavigateMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.gestures.NavigateMonth(1)
	case key.Matches(msg, m.keys.PickPrev):
		if f.Month > time.January {
			m.gestures.SelectMonth(f.Month - 1)
		}
	case key.Matches(msg, m.keys.PickNext):
		if f.Month < time.December {
			m.gestures.SelectMonth(f.Month + 1)
		}
	case key.Matches(msg, m.keys.PrevYear):
		if y, ok := m.adjacentYear(-1); ok {
			m.gestures.SelectYear(y)
		}
	case key.Matches(msg, m.keys.NextYear):
		if y, ok := m.adjacentYear(1); ok {
			m.gestures.SelectYear(y)
		}
	case key.Matches(msg, m.keys.Today):
		m.gestures.Today()
	case key.Matches(msg, m.keys.Range):
		m.gestures.SetRangeMode(!f.RangeMode)
	case key.Matches(msg, m.keys.Start):
		return m.beginEdit(fieldStart)
	case key.Matches(msg, m.keys.End):
		if f.ShowEnd {
			return m.beginEdit(fieldEnd)
		}
	case key.Matches(msg, m.keys.DaysUp):
		return m.beginEdit(fieldDaysUp)
	case key.Matches(msg, m.keys.DaysStart):
		return m.beginEdit(fieldDaysStart)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && f.ShowSidebar && n >= 1 && n <= len(f.Presets) {
			m.gestures.Preset(f.Presets[n-1])
		}
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return nil
	case "esc":
		m.stopEdit()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) beginEdit(f field) tea.Cmd {
	m.editing = f
	switch f {
	case fieldStart:
		m.input.SetValue(m.frame.StartText)
		m.input.Placeholder = "MM/DD/YYYY"
	case fieldEnd:
		m.input.SetValue(m.frame.EndText)
		m.input.Placeholder = "MM/DD/YYYY"
	default:
		m.input.SetValue(strconv.Itoa(m.days[f]))
		m.input.Placeholder = "days"
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// commitEdit hands the typed text to the controller. Bad text is the
// controller's problem; it ignores it.
func (m *Model) commitEdit() {
	f, v := m.editing, m.input.Value()
	m.stopEdit()
	if m.gestures == nil {
		return
	}
	switch f {
	case fieldStart:
		m.gestures.InputStart(v)
	case fieldEnd:
		m.gestures.InputEnd(v)
	case fieldDaysUp, fieldDaysStart:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return
		}
		m.days[f] = n
		if f == fieldDaysUp {
			m.gestures.DaysUpToToday(n)
		} else {
			m.gestures.DaysStartingToday(n)
		}
	}
}

func (m *Model) stopEdit() {
	m.editing = fieldNone
	m.input.Blur()
	m.input.SetValue("")
}

// click routes a left click: the element under the pointer reacts first,
// then every document listener registered before the click sees it.
func (m *Model) click(x, y int) tea.Cmd {
	scr := m.render()
	target := shell.TargetOutside
	switch {
	case scr.summary.Contains(x, y):
		target = shell.TargetSummary
	case scr.content.Contains(x, y):
		target = shell.TargetContent
	}

	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	listeners := make([]func(shell.Click), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, m.listeners[shell.ListenerID(id)])
	}

	var cmd tea.Cmd
	for _, r := range scr.regions {
		if r.rect.Contains(x, y) && m.gestures != nil {
			cmd = r.action(m)
			break
		}
	}
	for _, fn := range listeners {
		fn(shell.Click{Target: target, X: x, Y: y})
	}
	return cmd
}

func (m *Model) contentVisible() bool {
	return m.drawn && m.location != shell.Detached
}

func (m *Model) moveCursor(days int) {
	next := dates.AddDays(m.cursor, days)
	m.cursor = next
	if next.Year() == m.frame.Year && next.Month() == m.frame.Month {
		return
	}
	delta := 1
	if next.Before(time.Date(m.frame.Year, m.frame.Month, 1, 0, 0, 0, 0, next.Location())) {
		delta = -1
	}
	m.gestures.NavigateMonth(delta)
}

// syncCursor keeps the cursor inside the shown month, holding its day of
// month where possible.
func (m *Model) syncCursor() {
	f := m.frame
	if !m.cursor.IsZero() && m.cursor.Year() == f.Year && m.cursor.Month() == f.Month {
		return
	}
	day := dates.Today(m.now())
	if !m.cursor.IsZero() {
		day = m.cursor
	}
	n := min(day.Day(), dates.DaysIn(f.Year, f.Month))
	m.cursor = time.Date(f.Year, f.Month, n, 0, 0, 0, 0, day.Location())
}

func (m *Model) adjacentYear(delta int) (int, bool) {
	for i, y := range m.frame.Years {
		if y != m.frame.Year {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(m.frame.Years) {
			return 0, false
		}
		return m.frame.Years[j], true
	}
	// The view sits outside the option list; step anyway.
	return m.frame.Year + delta, true
}
