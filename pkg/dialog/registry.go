package dialog

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/dateslicer/pkg/shell"
)

// ErrUnknownDialog is returned by Open for an unregistered id.
var ErrUnknownDialog = errors.New("dialog: unknown dialog")

// ResultSink receives dialog results.
type ResultSink interface {
	SetResult(Result) error
}

// ResultSinkFunc adapts a function to ResultSink.
type ResultSinkFunc func(Result) error

// SetResult implements ResultSink.
func (f ResultSinkFunc) SetResult(r Result) error { return f(r) }

// Host is what a dialog gets from whoever opens it.
type Host struct {
	Surface shell.Surface
	Sink    ResultSink
	// Now defaults to time.Now.
	Now func() time.Time
}

// Dialog is an open dialog.
type Dialog interface {
	Result() Result
	Destroy()
}

// Factory builds a dialog from its initial state.
type Factory func(Host, InitialState) (Dialog, error)

// Registry maps dialog ids to factories. The zero value is ready to use.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with the calendar dialog registered.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(CalendarDialogID, NewCalendarDialog)
	return r
}

// Register adds or replaces the factory for id.
func (r *Registry) Register(id string, f Factory) {
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[id] = f
}

// IDs lists the registered ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Open builds the dialog registered under id.
func (r *Registry) Open(id string, h Host, is InitialState) (Dialog, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialog, id)
	}
	return f(h, is)
}
