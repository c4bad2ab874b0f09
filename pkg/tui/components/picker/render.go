package picker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/shell"
	"tableflip.dev/dateslicer/pkg/tui/ui/overlay"
)

const (
	sidebarGap   = 3
	summaryWidth = 40
)

type region struct {
	rect   overlay.Rect
	action func(*Model) tea.Cmd
}

// screen is one rendered view plus where things landed on it.
type screen struct {
	view    string
	summary overlay.Rect
	content overlay.Rect
	regions []region
}

// block is a stack of lines with clickable regions relative to its origin.
type block struct {
	lines   []string
	regions []region
}

func (b *block) add(line string) int {
	b.lines = append(b.lines, line)
	return len(b.lines) - 1
}

func (b *block) on(x, y, w int, action func(*Model) tea.Cmd) {
	b.regions = append(b.regions, region{rect: overlay.Rect{X: x, Y: y, Width: w, Height: 1}, action: action})
}

func (b *block) width() int {
	w := 0
	for _, l := range b.lines {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

func shift(regions []region, dx, dy int) []region {
	out := make([]region, len(regions))
	for i, r := range regions {
		r.rect.X += dx
		r.rect.Y += dy
		out[i] = r
	}
	return out
}

func (m *Model) render() screen {
	if !m.drawn {
		return screen{}
	}
	f := m.frame
	switch {
	case f.Mode == shell.Expanded && m.location == shell.Inline:
		return m.renderExpanded(f)
	case f.Mode == shell.Compact:
		return m.renderCompact(f)
	}
	return screen{}
}

func (m *Model) renderExpanded(f shell.Frame) screen {
	c := m.content(f)
	lines := append([]string{}, c.lines...)
	lines = append(lines, m.footer(f)...)
	return screen{
		view:    strings.Join(lines, "\n"),
		content: overlay.Rect{Width: c.width(), Height: len(c.lines)},
		regions: c.regions,
	}
}

func (m *Model) renderCompact(f shell.Frame) screen {
	label := truncate.StringWithTail(f.Summary, summaryWidth, "…")
	if f.Summary == shell.Placeholder {
		label = m.theme.Summary.Placeholder.Render(label)
	}
	arrow := "▾"
	if f.Open {
		arrow = "▴"
	}
	pill := m.theme.Summary.Pill.Render(label + " " + arrow)
	pillLines := strings.Split(pill, "\n")
	scr := screen{
		summary: overlay.Rect{Width: lipgloss.Width(pill), Height: len(pillLines)},
	}
	scr.regions = append(scr.regions, region{rect: scr.summary, action: func(m *Model) tea.Cmd {
		if m.popup != nil {
			m.popup.Toggle()
		}
		return nil
	}})

	bg := append(pillLines, m.footer(f)...)
	if !f.Open || m.location != shell.Overlay {
		scr.view = strings.Join(bg, "\n")
		return scr
	}

	c := m.content(f)
	closeBtn := lipgloss.PlaceHorizontal(c.width(), lipgloss.Right, "✕")
	c.lines = append([]string{closeBtn}, c.lines...)
	c.regions = shift(c.regions, 0, 1)
	c.on(c.width()-1, 0, 1, func(m *Model) tea.Cmd {
		if m.popup != nil {
			m.popup.CloseButton()
		}
		return nil
	})

	popup := m.theme.Popup.Render(strings.Join(c.lines, "\n"))
	height := max(m.height, len(pillLines)+lipgloss.Height(popup))
	view, rect := overlay.Compose(strings.Join(bg, "\n"), m.width, height, popup, overlay.Placement{
		Horizontal: lipgloss.Left,
		Vertical:   lipgloss.Top,
		OffsetY:    len(pillLines),
	})
	scr.view = view
	scr.content = rect
	// Border plus one cell of horizontal padding.
	scr.regions = append(shift(c.regions, rect.X+2, rect.Y+1), scr.regions...)
	return scr
}

// content is the picker body: optional sidebar, month header, grid,
// range toggle and date fields.
func (m *Model) content(f shell.Frame) block {
	cal := m.calendar(f)
	if !f.ShowSidebar {
		return cal
	}
	side := m.sidebar(f)
	sw := side.width() + sidebarGap
	var out block
	for i := 0; i < max(len(side.lines), len(cal.lines)); i++ {
		left, right := "", ""
		if i < len(side.lines) {
			left = side.lines[i]
		}
		if i < len(cal.lines) {
			right = cal.lines[i]
		}
		out.add(left + strings.Repeat(" ", max(0, sw-lipgloss.Width(left))) + right)
	}
	out.regions = append(side.regions, shift(cal.regions, sw, 0)...)
	return out
}

func (m *Model) sidebar(f shell.Frame) block {
	th := m.theme.Sidebar
	var b block
	b.add(th.Title.Render("Presets"))
	for i, p := range f.Presets {
		text := fmt.Sprintf("%s %s", th.Key.Render(strconv.Itoa(i+1)), th.Preset.Render(p.Label()))
		y := b.add(text)
		preset := p
		b.on(0, y, lipgloss.Width(text), func(m *Model) tea.Cmd {
			m.gestures.Preset(preset)
			return nil
		})
	}
	b.add("")
	for _, fd := range []field{fieldDaysUp, fieldDaysStart} {
		key := "+"
		if fd == fieldDaysStart {
			key = "-"
		}
		text := fmt.Sprintf("%s %s%d", th.Key.Render(key), fd.label(), m.days[fd])
		y := b.add(text)
		which := fd
		b.on(0, y, lipgloss.Width(text), func(m *Model) tea.Cmd { return m.beginEdit(which) })
	}
	return b
}

func (m *Model) calendar(f shell.Frame) block {
	th := m.theme.Calendar
	cw := 4
	if f.Dense {
		cw = 3
	}
	gridW := 7 * cw
	var b block

	title := th.Title.Render(fmt.Sprintf("%s %d", monthName(f.Month), f.Year))
	y := b.add(th.Arrow.Render("‹") + lipgloss.PlaceHorizontal(gridW-2, lipgloss.Center, title) + th.Arrow.Render("›"))
	b.on(0, y, 1, func(m *Model) tea.Cmd {
		m.gestures.NavigateMonth(-1)
		return nil
	})
	b.on(gridW-1, y, 1, func(m *Model) tea.Cmd {
		m.gestures.NavigateMonth(1)
		return nil
	})

	var header strings.Builder
	for _, h := range f.Headers {
		header.WriteString(m.cell(th.Weekday, h[:2], cw))
	}
	b.add(header.String())

	for _, week := range f.Weeks {
		var row strings.Builder
		y := len(b.lines)
		for col, d := range week {
			row.WriteString(m.cell(m.dayStyle(d), fmt.Sprintf("%2d", d.Number), cw))
			date := d.Date
			b.on(col*cw, y, cw, func(m *Model) tea.Cmd {
				m.cursor = date
				m.gestures.ClickDay(date)
				return nil
			})
		}
		b.add(row.String())
	}

	b.add("")
	box := "[ ]"
	if f.RangeMode {
		box = "[x]"
	}
	toggle := th.Toggle.Render(box) + " Date range"
	today := th.Toggle.Render("Today")
	y = b.add(toggle + "   " + today)
	b.on(0, y, lipgloss.Width(toggle), func(m *Model) tea.Cmd {
		m.gestures.SetRangeMode(!m.frame.RangeMode)
		return nil
	})
	b.on(lipgloss.Width(toggle)+3, y, lipgloss.Width(today), func(m *Model) tea.Cmd {
		m.gestures.Today()
		return nil
	})

	y = b.add(m.dateField(fieldStart, f.StartText))
	b.on(0, y, gridW, func(m *Model) tea.Cmd { return m.beginEdit(fieldStart) })
	if f.ShowEnd {
		y = b.add(m.dateField(fieldEnd, f.EndText))
		b.on(0, y, gridW, func(m *Model) tea.Cmd { return m.beginEdit(fieldEnd) })
	}
	if m.editing == fieldDaysUp || m.editing == fieldDaysStart {
		b.add(th.Label.Render(m.editing.label()) + m.input.View())
	}
	return b
}

func (m *Model) dateField(fd field, text string) string {
	th := m.theme.Calendar
	label := th.Label.Render(fmt.Sprintf("%-7s", fd.label()))
	if m.editing == fd {
		return label + m.input.View()
	}
	if text == "" {
		text = "MM/DD/YYYY"
	}
	return label + th.Field.Render(text)
}

func (m *Model) cell(style lipgloss.Style, text string, width int) string {
	if width > 3 {
		style = style.Padding(0, 1)
	} else {
		style = style.PaddingRight(1)
	}
	return style.Render(text)
}

func (m *Model) dayStyle(d dates.Day) lipgloss.Style {
	th := m.theme.Calendar
	style := th.Day
	switch {
	case d.IsRangeStart || d.IsRangeEnd:
		style = th.RangeEdge
	case d.IsInRange:
		style = th.InRange
	case !d.IsCurrentMonth:
		style = th.OtherMonth
	}
	if d.IsToday {
		style = th.Today.Inherit(style)
	}
	if dates.IsSameDay(d.Date, m.cursor) && m.editing == fieldNone {
		style = th.Cursor.Inherit(style)
	}
	return style
}

func (m *Model) footer(f shell.Frame) []string {
	if f.Dense {
		return nil
	}
	return []string{"", m.theme.Footer.Help.Render(m.help.View(m.keys))}
}

func monthName(mo time.Month) string {
	if mo < time.January || mo > time.December {
		return ""
	}
	return dates.MonthNames[mo-1]
}
