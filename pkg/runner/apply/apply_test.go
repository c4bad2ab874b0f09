package apply

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/visual"
)

type host struct {
	slots map[string]filter.Advanced
	err   error
}

func (h *host) ApplyFilter(name string, f filter.Advanced) error {
	if h.err != nil {
		return h.err
	}
	if h.slots == nil {
		h.slots = map[string]filter.Advanced{}
	}
	h.slots[name] = f
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangeWritesSlicerSlot(t *testing.T) {
	h := &host{}
	a := &Apply{Host: h, QueryName: "Sales.OrderDate"}
	f, err := a.Range(dates.NewRange(day(2024, time.March, 1), day(2024, time.March, 3)))
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	got, ok := h.slots[visual.FilterName]
	if !ok {
		t.Fatalf("expected the %q slot to be written", visual.FilterName)
	}
	if got.Target != f.Target || got.Target.Column != "OrderDate" {
		t.Fatalf("unexpected target %+v", got.Target)
	}
}

func TestRangeErrors(t *testing.T) {
	r := dates.NewRange(day(2024, time.March, 1), day(2024, time.March, 1))
	if _, err := (&Apply{QueryName: "Sales.Date"}).Range(r); err == nil {
		t.Fatalf("expected an error without a host")
	}
	if _, err := (&Apply{Host: &host{}}).Range(r); !errors.Is(err, filter.ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	boom := errors.New("boom")
	if _, err := (&Apply{Host: &host{err: boom}, QueryName: "Sales.Date"}).Range(r); !errors.Is(err, boom) {
		t.Fatalf("expected the host error, got %v", err)
	}
}

func TestMaybeNil(t *testing.T) {
	if err := Maybe(nil, dates.Range{}); err != nil {
		t.Fatalf("nil apply should be a no-op, got %v", err)
	}
}
