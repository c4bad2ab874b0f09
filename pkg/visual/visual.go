// Package visual is the host wrapper around the slicer core. It feeds data
// views into the controller and mirrors every finalized selection into a
// range filter on the host's filter channel.
package visual

import (
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/dialog"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/selection"
	"tableflip.dev/dateslicer/pkg/settings"
	"tableflip.dev/dateslicer/pkg/shell"
)

// FilterName is the slot the slicer's filter is merged into.
const FilterName = "general"

// Dense layout kicks in below either dimension.
const (
	DenseWidth  = 350
	DenseHeight = 300
)

// Host is the filter channel.
type Host interface {
	ApplyFilter(name string, f filter.Advanced) error
}

// Picker is the presentation the visual drives.
type Picker interface {
	shell.Picker
	SetCompact(bool)
	SetShowSidebar(bool)
}

// Viewport is the visual's size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// DataView is one update from the host.
type DataView struct {
	// QueryName is the bound column, "Table.Column".
	QueryName string
	// Values are the column's values, any date-like representation.
	Values []any
	// Filters are the filters currently applied by this visual.
	Filters  []filter.Advanced
	Settings *settings.Settings
	Viewport Viewport
}

// Options configures a Visual.
type Options struct {
	Host   Host
	Picker Picker
	// Now defaults to time.Now.
	Now func() time.Time
}

// Visual owns one controller for its lifetime.
type Visual struct {
	host       Host
	picker     Picker
	controller *selection.Controller
	now        func() time.Time

	target    filter.Target
	settings  *settings.Settings
	restored  bool
	destroyed bool
}

// New builds the visual. Nothing is drawn until the first Update.
func New(opts Options) *Visual {
	v := &Visual{
		host:     opts.Host,
		picker:   opts.Picker,
		now:      opts.Now,
		settings: settings.Default(),
	}
	if v.now == nil {
		v.now = time.Now
	}
	var renderer selection.Renderer
	if v.picker != nil {
		renderer = v.picker
	}
	v.controller = selection.New(selection.Options{
		Initial:  selection.State{RangeMode: true},
		Renderer: renderer,
		Notifier: selection.NotifierFunc(v.notify),
		Now:      v.now,
	})
	return v
}

// Controller exposes the controller so a surface can route gestures.
func (v *Visual) Controller() *selection.Controller { return v.controller }

// Target is the column the filter applies to.
func (v *Visual) Target() filter.Target { return v.target }

// Update applies a host update. A nil view is ignored.
func (v *Visual) Update(dv *DataView) {
	if v.destroyed || dv == nil {
		return
	}
	if dv.Settings != nil {
		v.settings = dv.Settings
	}
	cal := v.settings.Calendar

	if t, ok := filter.TargetFromQueryName(dv.QueryName); ok {
		v.target = t
	}
	b := v.controller.State().Bounds
	if lo, hi, ok := filter.Bounds(dv.Values, v.now().Location()); ok {
		b.MinDate, b.MaxDate = lo, hi
	}

	if v.picker != nil {
		v.picker.SetDisplayMode(cal.DisplayMode)
		v.picker.SetCompact(dv.Viewport.Width < DenseWidth || dv.Viewport.Height < DenseHeight)
		v.picker.SetShowSidebar(cal.ShowSidebar)
	}
	// SetBounds and SetFirstDay both render; set the week start first so
	// the grid and a default preset agree on it.
	v.controller.SetFirstDay(cal.FirstDayOfWeek)
	v.controller.SetBounds(b)

	if !v.restored {
		v.restored = true
		if !v.restore(dv.Filters) && cal.DefaultPreset != "" {
			log.Debug("applying default preset", "preset", string(cal.DefaultPreset))
			v.controller.Preset(cal.DefaultPreset)
		}
	}
	v.controller.Refresh()
}

// restore seeds the selection from the first applied filter. It reports
// whether a filter was present.
func (v *Visual) restore(filters []filter.Advanced) bool {
	if len(filters) == 0 {
		return false
	}
	f := filters[0]
	if len(f.Conditions) == 0 {
		return true
	}
	start, end, ok := f.Range(v.now().Location())
	if ok {
		if start.IsZero() {
			start, end = end, time.Time{}
		}
		v.controller.Seed(dates.Range{Start: start, End: end})
		log.Debug("restored filter", "target", f.Target.String(), "start", dates.FormatDate(start))
	}
	return true
}

// Sync adopts a filter written by someone else on the channel. It redraws
// but does not notify, and reports whether the selection changed. Filters
// for another column are ignored.
func (v *Visual) Sync(f filter.Advanced) bool {
	if v.destroyed || f.Target != v.target {
		return false
	}
	start, end, ok := f.Range(v.now().Location())
	if !ok {
		return false
	}
	if start.IsZero() {
		start, end = end, time.Time{}
	}
	st := v.controller.State()
	if dates.IsSameDay(st.RangeStart, start) && (end.IsZero() || dates.IsSameDay(st.RangeEnd, end)) {
		return false
	}
	v.controller.Seed(dates.Range{Start: start, End: end})
	v.controller.Refresh()
	log.Debug("synced filter", "target", f.Target.String(), "start", dates.FormatDate(start))
	return true
}

// DialogState snapshots the selection for a calendar dialog.
func (v *Visual) DialogState() dialog.InitialState {
	return dialog.NewInitialState(v.controller.State(), v.settings.Calendar.ShowSidebar, v.settings.Appearance)
}

// ApplyDialogResult adopts a dialog's result and applies the filter once.
// A result without a start only carries the mode over.
func (v *Visual) ApplyDialogResult(r dialog.Result) {
	if v.destroyed {
		return
	}
	res := r.Selection(v.now().Location())
	if res.RangeStart.IsZero() {
		if res.RangeMode != v.controller.State().RangeMode {
			v.controller.SetRangeMode(res.RangeMode)
		}
		return
	}
	end := res.RangeEnd
	if end.IsZero() {
		end = res.RangeStart
	}
	v.controller.Adopt(res.RangeMode, dates.Range{Start: res.RangeStart, End: end})
}

// Destroy tears down the picker. Later updates are ignored.
func (v *Visual) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.picker != nil {
		v.picker.Destroy()
	}
}

func (v *Visual) notify(r selection.Result) {
	if v.host == nil || v.target.IsZero() || r.RangeStart.IsZero() {
		return
	}
	end := r.RangeEnd
	if end.IsZero() {
		end = r.RangeStart
	}
	f, err := filter.NewRange(v.target, r.RangeStart, end)
	if err != nil {
		log.Error("building filter", err)
		return
	}
	if err := v.host.ApplyFilter(FilterName, f); err != nil {
		log.Error("applying filter", err, "target", v.target.String())
		return
	}
	log.Debug("applied filter", "target", v.target.String(), "range", dates.NewRange(r.RangeStart, end).String())
}
