// Package ui runs the slicer full screen: the visual bound to the store's
// filter channel, or the calendar dialog seeded from a state file.
package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"tableflip.dev/dateslicer/pkg/dialog"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/settings"
	"tableflip.dev/dateslicer/pkg/shell"
	"tableflip.dev/dateslicer/pkg/store"
	"tableflip.dev/dateslicer/pkg/tui/components/picker"
	"tableflip.dev/dateslicer/pkg/tui/theme"
	"tableflip.dev/dateslicer/pkg/visual"
)

// ErrNotTerminal is returned when stdout is not a terminal.
var ErrNotTerminal = errors.New("ui needs an interactive terminal")

// UI is the interactive slicer.
type UI struct {
	Persistence *store.Store
	Settings    *settings.Settings
	// QueryName is the bound column. Empty reuses the stored filter's
	// column.
	QueryName string
	// Values are the column values the picker derives its bounds from.
	Values []any
	// Dialog opens the calendar dialog seeded from the stored selection
	// instead of the inline visual. The result is applied to the bound
	// column when the dialog closes.
	Dialog bool
	// StatePath seeds the calendar dialog from an InitialState file.
	// Implies Dialog.
	StatePath string

	Printer *printers.PrettyPrint
	// Now defaults to time.Now.
	Now func() time.Time
}

// Do runs the program until the user quits, then prints the outcome.
func (u *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	if u.Persistence == nil {
		return errors.New("can not start, no persistence")
	}
	s := u.settings()
	if err := startLog(s); err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	m, err := u.model()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if events, err := u.Persistence.Watch(ctx); err != nil {
		log.Error("store watch disabled", err)
	} else {
		m.events = events
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return m.finish(u.printer())
}

func (u *UI) model() (*model, error) {
	if !u.Dialog && u.StatePath == "" {
		return newVisualModel(u.Persistence, u.settings(), u.dataView(), u.Now), nil
	}
	dv := u.dataView()
	bridge := visual.New(visual.Options{Host: u.Persistence, Now: u.Now})
	bridge.Update(&dv)
	is := bridge.DialogState()
	if u.StatePath != "" {
		var err error
		if is, err = ReadState(u.StatePath); err != nil {
			return nil, err
		}
	}
	return newDialogModel(u.Persistence, is, bridge, u.Now)
}

// dataView is the first host update: the bound column, its values and the
// filter left in the store by a previous run.
func (u *UI) dataView() visual.DataView {
	dv := visual.DataView{
		QueryName: u.QueryName,
		Values:    u.Values,
		Settings:  u.settings(),
	}
	f, err := u.Persistence.Filter(store.GeneralFilter)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Error("reading stored filter", err)
	default:
		if dv.QueryName == "" {
			dv.QueryName = f.Target.String()
		}
		if want, ok := filter.TargetFromQueryName(dv.QueryName); ok && want == f.Target {
			dv.Filters = []filter.Advanced{f}
		}
	}
	return dv
}

func (u *UI) settings() *settings.Settings {
	if u.Settings == nil {
		u.Settings = settings.Default()
	}
	return u.Settings
}

func (u *UI) printer() *printers.PrettyPrint {
	if u.Printer == nil {
		return &printers.PrettyPrint{}
	}
	return u.Printer
}

// ReadState loads a dialog InitialState record.
func ReadState(path string) (dialog.InitialState, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return dialog.InitialState{}, fmt.Errorf("read dialog state: %w", err)
	}
	var is dialog.InitialState
	if err := json.Unmarshal(b, &is); err != nil {
		return dialog.InitialState{}, fmt.Errorf("decode dialog state %s: %w", path, err)
	}
	return is, nil
}

// startLog sends the log to a file so the alternate screen stays clean.
func startLog(s *settings.Settings) error {
	log.SetLevel(log.ParseLevel(s.LogLevel))
	path := s.LogFile
	if path == "" {
		path = filepath.Join(s.Path, "dateslicer.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return log.ToFile(path)
}

func newVisualModel(st *store.Store, s *settings.Settings, dv visual.DataView, now func() time.Time) *model {
	pm := picker.New(picker.Options{Theme: theme.New(s.Appearance), Now: now})
	sh := shell.New(shell.Options{
		Surface:     pm,
		Document:    pm,
		Scheduler:   pm,
		Mode:        s.Calendar.DisplayMode,
		ShowSidebar: s.Calendar.ShowSidebar,
		Now:         now,
	})
	v := visual.New(visual.Options{Host: st, Picker: sh, Now: now})
	pm.Bind(v.Controller(), sh)

	m := &model{picker: pm, visual: v, store: st, view: dv}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// newDialogModel opens the calendar dialog. Every result lands in the
// store's result slot; bridge, when bound to a column, applies the last one
// as a filter on finish.
func newDialogModel(st *store.Store, is dialog.InitialState, bridge *visual.Visual, now func() time.Time) (*model, error) {
	pm := picker.New(picker.Options{Theme: theme.New(is.Appearance()), Now: now})
	sink := dialog.ResultSinkFunc(func(r dialog.Result) error {
		return st.SetResult(dialog.CalendarDialogID, r)
	})
	d, err := dialog.NewRegistry().Open(dialog.CalendarDialogID, dialog.Host{Surface: pm, Sink: sink, Now: now}, is)
	if err != nil {
		return nil, err
	}
	cal, ok := d.(*dialog.CalendarDialog)
	if !ok {
		d.Destroy()
		return nil, fmt.Errorf("dialog %s has no calendar", dialog.CalendarDialogID)
	}
	pm.Bind(cal.Controller, cal.Shell)
	return &model{picker: pm, dialog: d, bridge: bridge, store: st}, nil
}
