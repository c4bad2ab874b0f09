package preset

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/printers"
	"tableflip.dev/dateslicer/pkg/runner/apply"
)

func init() {
	color.NoColor = true
}

func fixedNow() time.Time {
	return time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC)
}

type host struct{ applied []filter.Advanced }

func (h *host) ApplyFilter(_ string, f filter.Advanced) error {
	h.applied = append(h.applied, f)
	return nil
}

func TestListAsJSON(t *testing.T) {
	var buf bytes.Buffer
	p := Preset{JSON: true, Now: fixedNow, Printer: &printers.PrettyPrint{Out: &buf}}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got []printers.RangeRecord
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got) != len(dates.Presets()) {
		t.Fatalf("expected %d presets, got %d", len(dates.Presets()), len(got))
	}
	if got[0].Preset != string(dates.Yesterday) || got[0].Start != "2024-01-16" || got[0].Days != 1 {
		t.Fatalf("unexpected first record %+v", got[0])
	}
}

func TestOneAppliesFilter(t *testing.T) {
	var buf bytes.Buffer
	h := &host{}
	p := Preset{
		Key:      dates.ThisWeek,
		FirstDay: time.Monday,
		Now:      fixedNow,
		Apply:    &apply.Apply{Host: h, QueryName: "Sales.Date"},
		Printer:  &printers.PrettyPrint{Out: &buf},
	}
	if err := p.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(h.applied) != 1 {
		t.Fatalf("expected one filter, got %d", len(h.applied))
	}
	if out := buf.String(); !strings.Contains(out, "This Week") || !strings.Contains(out, "01/15/2024 — 01/21/2024") {
		t.Fatalf("unexpected output %q", out)
	}
}
