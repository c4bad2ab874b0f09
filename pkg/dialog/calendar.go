package dialog

import (
	"time"

	"tableflip.dev/dateslicer/pkg/log"
	"tableflip.dev/dateslicer/pkg/selection"
	"tableflip.dev/dateslicer/pkg/settings"
	"tableflip.dev/dateslicer/pkg/shell"
)

// CalendarDialogID is the id the calendar dialog registers under.
const CalendarDialogID = "CalendarDialog"

// CalendarDialog is an always-expanded picker that reports every finalize
// to its sink.
type CalendarDialog struct {
	Controller *selection.Controller
	Shell      *shell.Shell

	sink       ResultSink
	appearance settings.Appearance
	result     Result
}

var _ Dialog = (*CalendarDialog)(nil)

// NewCalendarDialog is the Factory for CalendarDialogID. The initial result
// is pushed to the sink before it returns.
func NewCalendarDialog(h Host, is InitialState) (Dialog, error) {
	now := h.Now
	if now == nil {
		now = time.Now
	}
	d := &CalendarDialog{
		sink:       h.Sink,
		appearance: is.Appearance(),
	}
	d.Shell = shell.New(shell.Options{
		Surface:     h.Surface,
		Mode:        shell.Expanded,
		ShowSidebar: is.ShowSidebar,
		Now:         now,
	})
	d.Controller = selection.New(selection.Options{
		Initial:  is.Restore(now().Location()),
		Renderer: d.Shell,
		Notifier: selection.NotifierFunc(d.sync),
		Now:      now,
	})
	d.Controller.Refresh()
	d.sync(d.Controller.State().Result())
	return d, nil
}

// Appearance is the dialog's theme.
func (d *CalendarDialog) Appearance() settings.Appearance { return d.appearance }

// Result is the last result pushed to the sink.
func (d *CalendarDialog) Result() Result { return d.result }

// Destroy tears down the shell.
func (d *CalendarDialog) Destroy() { d.Shell.Destroy() }

func (d *CalendarDialog) sync(r selection.Result) {
	d.result = NewResult(r)
	if d.sink == nil {
		return
	}
	if err := d.sink.SetResult(d.result); err != nil {
		log.Error("dialog result not delivered", err, "dialog", CalendarDialogID)
	}
}
