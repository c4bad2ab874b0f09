// Package bounds reports the date range a column of values spans, which is
// what the picker uses for its year list and the min date preset.
package bounds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/dateslicer/pkg/dates"
	"tableflip.dev/dateslicer/pkg/filter"
	"tableflip.dev/dateslicer/pkg/printers"
)

// ErrNoDates is returned when none of the values read as a date.
var ErrNoDates = errors.New("no date values found")

// Bounds reads one value per line from In, after any Values.
type Bounds struct {
	Values []string
	In     io.Reader
	JSON   bool

	Printer *printers.PrettyPrint
}

// Do scans the values and prints the earliest and latest day.
func (b *Bounds) Do(ctx context.Context) error {
	pp := b.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	values := make([]any, 0, len(b.Values))
	for _, v := range b.Values {
		values = append(values, v)
	}
	if b.In != nil {
		scanner := bufio.NewScanner(b.In)
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				values = append(values, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read values: %w", err)
		}
	}

	lo, hi, ok := filter.Bounds(values, time.Local)
	if !ok {
		return ErrNoDates
	}
	r := dates.NewRange(lo, hi)
	if b.JSON {
		return pp.JSON(printers.NewRangeRecord(r))
	}
	pp.Title("Bounds")
	pp.Range(r)
	return nil
}
