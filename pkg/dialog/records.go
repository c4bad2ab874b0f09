// Package dialog holds the serializable records exchanged with a host
// dialog and the registry hosts use to open dialogs by id.
package dialog

import (
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/selection"
	"tableflip.dev/dateslicer/pkg/settings"
)

// InitialState seeds a dialog. ViewMonth is zero-based and ISO fields are
// null when unset.
type InitialState struct {
	ViewYear       int     `json:"viewYear"`
	ViewMonth      int     `json:"viewMonth"`
	RangeStartISO  *string `json:"rangeStartISO"`
	RangeEndISO    *string `json:"rangeEndISO"`
	IsRangeMode    bool    `json:"isRangeMode"`
	FirstDayOfWeek int     `json:"firstDayOfWeek"`
	ShowSidebar    bool    `json:"showSidebar"`
	MinYear        int     `json:"minYear"`
	MaxYear        int     `json:"maxYear"`
	MinDateISO     *string `json:"minDateISO"`
	AccentColor    string  `json:"accentColor"`
	BgColor        string  `json:"bgColor"`
	TextColor      string  `json:"textColor"`
	BorderColor    string  `json:"borderColor"`
}

// Result is pushed to the host on every finalize.
type Result struct {
	RangeStartISO *string `json:"rangeStartISO"`
	RangeEndISO   *string `json:"rangeEndISO"`
	IsRangeMode   bool    `json:"isRangeMode"`
	ViewYear      int     `json:"viewYear"`
	ViewMonth     int     `json:"viewMonth"`
}

// NewInitialState snapshots st for a dialog.
func NewInitialState(st selection.State, showSidebar bool, app settings.Appearance) InitialState {
	minYear, maxYear := st.Bounds.Years(st.ViewYear)
	return InitialState{
		ViewYear:       st.ViewYear,
		ViewMonth:      int(st.ViewMonth) - 1,
		RangeStartISO:  isoPtr(st.RangeStart),
		RangeEndISO:    isoPtr(st.RangeEnd),
		IsRangeMode:    st.RangeMode,
		FirstDayOfWeek: int(st.FirstDay),
		ShowSidebar:    showSidebar,
		MinYear:        minYear,
		MaxYear:        maxYear,
		MinDateISO:     isoPtr(st.Bounds.MinDate),
		AccentColor:    app.Accent,
		BgColor:        app.Background,
		TextColor:      app.Text,
		BorderColor:    app.Border,
	}
}

// Restore turns the record back into selection state. Unparsable dates are
// treated as absent.
func (is InitialState) Restore(loc *time.Location) selection.State {
	st := selection.State{
		ViewYear:  is.ViewYear,
		ViewMonth: time.Month(is.ViewMonth + 1),
		RangeMode: is.IsRangeMode,
		FirstDay:  time.Weekday(is.FirstDayOfWeek),
		Bounds: selection.Bounds{
			MinYear: is.MinYear,
			MaxYear: is.MaxYear,
		},
	}
	st.RangeStart = parsePtr(is.RangeStartISO, loc)
	st.RangeEnd = parsePtr(is.RangeEndISO, loc)
	st.Bounds.MinDate = parsePtr(is.MinDateISO, loc)
	return st
}

// Appearance returns the record's colors, falling back to the defaults.
func (is InitialState) Appearance() settings.Appearance {
	return settings.Appearance{
		Accent:     settings.Color(is.AccentColor, settings.DefaultAccent),
		Background: settings.Color(is.BgColor, settings.DefaultBackground),
		Text:       settings.Color(is.TextColor, settings.DefaultText),
		Border:     settings.Color(is.BorderColor, settings.DefaultBorder),
	}
}

// NewResult converts a controller result.
func NewResult(r selection.Result) Result {
	return Result{
		RangeStartISO: isoPtr(r.RangeStart),
		RangeEndISO:   isoPtr(r.RangeEnd),
		IsRangeMode:   r.RangeMode,
		ViewYear:      r.ViewYear,
		ViewMonth:     int(r.ViewMonth) - 1,
	}
}

// Selection converts the record back, dropping unparsable dates.
func (r Result) Selection(loc *time.Location) selection.Result {
	return selection.Result{
		RangeStart: parsePtr(r.RangeStartISO, loc),
		RangeEnd:   parsePtr(r.RangeEndISO, loc),
		RangeMode:  r.IsRangeMode,
		ViewYear:   r.ViewYear,
		ViewMonth:  time.Month(r.ViewMonth + 1),
	}
}

func isoPtr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := dates.FormatISO(t)
	return &s
}

func parsePtr(s *string, loc *time.Location) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, ok := dates.ParseISO(*s, loc)
	if !ok {
		return time.Time{}
	}
	return t
}
