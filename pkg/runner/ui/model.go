package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dateslicer/pkg/dialog"
	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/store"
	"tableflip.dev/dateslicer/pkg/tui/components/picker"
	"tableflip.dev/dateslicer/pkg/visual"
)

// A terminal cell is roughly 8x16 pixels; the visual's dense layout
// thresholds are in pixels.
const (
	cellWidth  = 8
	cellHeight = 16

	defaultWidth  = 80
	defaultHeight = 24
)

// storeEventMsg carries a store change into the update loop.
type storeEventMsg store.Event

// model hosts the picker and plays the host's part: it resizes the visual
// and feeds it filter changes made by other processes.
type model struct {
	picker *picker.Model
	visual *visual.Visual
	dialog dialog.Dialog
	// bridge carries the dialog's result back to the filter channel.
	bridge *visual.Visual
	store  *store.Store
	view   visual.DataView
	events <-chan store.Event
}

var _ tea.Model = (*model)(nil)

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.waitForEvent())
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case storeEventMsg:
		m.onStoreEvent(store.Event(msg))
		return m, m.waitForEvent()
	}
	_, cmd := m.picker.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *model) View() (string, *tea.Cursor) {
	return m.picker.View()
}

func (m *model) resize(w, h int) {
	if m.visual == nil {
		return
	}
	m.view.Viewport = visual.Viewport{Width: w * cellWidth, Height: h * cellHeight}
	m.visual.Update(&m.view)
}

func (m *model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

func (m *model) onStoreEvent(ev store.Event) {
	log.Debug("store changed", "type", ev.Type.String(), "name", ev.Name)
	if m.visual == nil || ev.Type != store.EventFilterChanged || ev.Name != store.GeneralFilter {
		return
	}
	f, err := m.store.Filter(store.GeneralFilter)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("reading changed filter", err)
		}
		return
	}
	m.visual.Sync(f)
}

// finish tears down and reports the final selection.
func (m *model) finish(pp *printers.PrettyPrint) error {
	if m.dialog != nil {
		m.dialog.Destroy()
		res := m.dialog.Result()
		if m.bridge != nil && !m.bridge.Target().IsZero() {
			m.bridge.ApplyDialogResult(res)
			m.bridge.Destroy()
		}
		return pp.JSON(res)
	}
	m.visual.Destroy()
	st := m.visual.Controller().State()
	r, ok := st.Range()
	if !ok {
		return nil
	}
	title := "Selection"
	if t := m.visual.Target(); !t.IsZero() {
		title = t.String()
	}
	pp.Title(title)
	pp.Range(r)
	return nil
}
