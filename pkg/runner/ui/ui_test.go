package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/fatih/color"

	"tableflip.dev/dateslicer/pkg/dialog"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/settings"
	"tableflip.dev/dateslicer/pkg/store"
)

func init() {
	color.NoColor = true
}

func fixedNow() time.Time {
	return time.Date(2024, time.January, 17, 10, 0, 0, 0, time.Local)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(t.TempDir())
}

func seedFilter(t *testing.T, st *store.Store, start, end time.Time) {
	t.Helper()
	f, err := filter.NewRange(filter.Target{Table: "Sales", Column: "Date"}, start, end)
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}
	if err := st.ApplyFilter(store.GeneralFilter, f); err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
}

func TestDataViewReusesStoredColumn(t *testing.T) {
	st := newStore(t)
	seedFilter(t, st, day(2022, time.May, 2), day(2022, time.May, 9))

	u := &UI{Persistence: st}
	dv := u.dataView()
	if dv.QueryName != "Sales.Date" {
		t.Fatalf("expected the stored column, got %q", dv.QueryName)
	}
	if len(dv.Filters) != 1 {
		t.Fatalf("expected the stored filter to be restored, got %d", len(dv.Filters))
	}

	u = &UI{Persistence: st, QueryName: "Orders.ShipDate"}
	if dv := u.dataView(); len(dv.Filters) != 0 {
		t.Fatalf("a filter for another column must not be restored")
	}
}

func TestVisualModelRestoresAndResizes(t *testing.T) {
	st := newStore(t)
	seedFilter(t, st, day(2022, time.May, 2), day(2022, time.May, 9))
	u := &UI{Persistence: st, Settings: settings.Default(), Now: fixedNow}

	m := newVisualModel(st, u.settings(), u.dataView(), fixedNow)
	f := m.picker.Frame()
	if f.StartText != "05/02/2022" || f.EndText != "05/09/2022" {
		t.Fatalf("restored range: %q..%q", f.StartText, f.EndText)
	}
	if f.Dense {
		t.Fatalf("an 80x24 terminal should not be dense")
	}

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	if !m.picker.Frame().Dense {
		t.Fatalf("a 30 column terminal should be dense")
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.picker.Frame().Dense {
		t.Fatalf("a 120x40 terminal should not be dense")
	}
}

func TestStoreEventSyncsSelection(t *testing.T) {
	st := newStore(t)
	seedFilter(t, st, day(2022, time.May, 2), day(2022, time.May, 9))
	u := &UI{Persistence: st, Settings: settings.Default()}
	m := newVisualModel(st, u.settings(), u.dataView(), fixedNow)

	seedFilter(t, st, day(2023, time.June, 1), day(2023, time.June, 3))
	m.Update(storeEventMsg{Type: store.EventFilterChanged, Name: store.GeneralFilter})

	f := m.picker.Frame()
	if f.StartText != "06/01/2023" || f.EndText != "06/03/2023" {
		t.Fatalf("synced range: %q..%q", f.StartText, f.EndText)
	}

	m.Update(storeEventMsg{Type: store.EventResultChanged, Name: dialog.CalendarDialogID})
	if m.picker.Frame().StartText != "06/01/2023" {
		t.Fatalf("result events must not touch the selection")
	}
}

func TestGestureWritesFilter(t *testing.T) {
	st := newStore(t)
	u := &UI{Persistence: st, Settings: settings.Default(), QueryName: "Sales.Date"}
	m := newVisualModel(st, u.settings(), u.dataView(), fixedNow)

	m.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	f, err := st.Filter(store.GeneralFilter)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	start, end, _ := f.Range(time.Local)
	if !start.Equal(day(2024, time.January, 17)) || !end.Equal(day(2024, time.January, 17)) {
		t.Fatalf("unexpected stored range %v..%v", start, end)
	}

	var buf bytes.Buffer
	if err := m.finish(&printers.PrettyPrint{Out: &buf}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !strings.Contains(buf.String(), "Sales.Date") || !strings.Contains(buf.String(), "01/17/2024") {
		t.Fatalf("finish output: %q", buf.String())
	}
}

func TestDialogModelWritesResult(t *testing.T) {
	st := newStore(t)
	is := dialog.InitialState{ViewYear: 2024, ViewMonth: 0, IsRangeMode: true, ShowSidebar: true}

	m, err := newDialogModel(st, is, nil, fixedNow)
	if err != nil {
		t.Fatalf("newDialogModel: %v", err)
	}
	if _, err := st.Result(dialog.CalendarDialogID); err != nil {
		t.Fatalf("the initial result should be stored: %v", err)
	}

	m.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	r, err := st.Result(dialog.CalendarDialogID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if r.RangeStartISO == nil {
		t.Fatalf("today should have been stored")
	}
	if got := r.Selection(time.Local).RangeStart; !got.Equal(day(2024, time.January, 17)) {
		t.Fatalf("stored start %v", got)
	}

	var buf bytes.Buffer
	if err := m.finish(&printers.PrettyPrint{Out: &buf}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !strings.Contains(buf.String(), `"isRangeMode": true`) {
		t.Fatalf("finish output: %s", buf.String())
	}
}

func TestDialogSeedsFromStoreAndAppliesFilter(t *testing.T) {
	st := newStore(t)
	seedFilter(t, st, day(2022, time.May, 2), day(2022, time.May, 9))
	u := &UI{Persistence: st, Settings: settings.Default(), Dialog: true, Now: fixedNow}

	m, err := u.model()
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	r, err := st.Result(dialog.CalendarDialogID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if got := r.Selection(time.Local).RangeStart; !got.Equal(day(2022, time.May, 2)) {
		t.Fatalf("dialog should open on the stored range, got %+v", r)
	}

	m.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if err := m.finish(&printers.PrettyPrint{Out: &bytes.Buffer{}}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	f, err := st.Filter(store.GeneralFilter)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	start, end, _ := f.Range(time.Local)
	if f.Target.String() != "Sales.Date" || !start.Equal(day(2024, time.January, 17)) || !end.Equal(day(2024, time.January, 17)) {
		t.Fatalf("dialog result not applied: %s %v..%v", f.Target, start, end)
	}
}

func TestReadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"viewYear": 2023, "viewMonth": 11, "rangeStartISO": "2023-12-04T00:00:00.000Z", "isRangeMode": true}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	is, err := ReadState(path)
	if err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if is.ViewYear != 2023 || is.ViewMonth != 11 || !is.IsRangeMode || is.RangeStartISO == nil {
		t.Fatalf("unexpected state %+v", is)
	}

	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadState(path); err == nil {
		t.Fatalf("expected a decode error")
	}
}
