// Package overlay draws a popup over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement anchors the popup. Offsets are measured from the anchored
// edges; Center ignores the offset on that axis.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	OffsetX    int
	OffsetY    int
}

// Rect is the popup's position in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Compose draws foreground over a width x height background and returns
// the result with the rectangle the popup occupies. Background cells
// outside the popup keep their styling.
func Compose(background string, width, height int, foreground string, p Placement) (string, Rect) {
	bg := fit(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n"), Rect{}
	}
	fg := strings.Split(foreground, "\n")
	w := 0
	for _, line := range fg {
		w = max(w, lipgloss.Width(line))
	}
	r := Rect{Width: min(w, width), Height: min(len(fg), height)}
	r.X = offset(p.Horizontal, width, r.Width, p.OffsetX)
	r.Y = offset(p.Vertical, height, r.Height, p.OffsetY)

	for i := 0; i < r.Height; i++ {
		row := r.Y + i
		line := pad(truncate.String(fg[i], uint(r.Width)), r.Width)
		left := truncate.String(bg[row], uint(r.X))
		right := skip(bg[row], r.X+r.Width)
		bg[row] = left + "\x1b[0m" + line + "\x1b[0m" + right
	}
	return strings.Join(bg, "\n"), r
}

func offset(pos lipgloss.Position, total, size, margin int) int {
	var o int
	switch pos {
	case lipgloss.Center:
		o = (total - size) / 2
	case lipgloss.Right: // also Bottom
		o = total - size - margin
	default:
		o = margin
	}
	return max(0, min(o, total-size))
}

// fit pads or crops view to exactly height lines of width cells.
func fit(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(truncate.String(lines[i], uint(max(width, 0))), width)
	}
	return lines
}

func pad(s string, width int) string {
	if w := ansi.PrintableRuneWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// skip drops the first n printable cells of s. Escape sequences are kept so
// the remainder renders with the styling in effect at that column.
func skip(s string, n int) string {
	var (
		b     strings.Builder
		seen  int
		inSeq bool
		kept  bool
	)
	for _, c := range s {
		if c == ansi.Marker {
			inSeq = true
		}
		if inSeq {
			b.WriteRune(c)
			if ansi.IsTerminator(c) {
				inSeq = false
			}
			continue
		}
		if seen >= n {
			kept = true
			b.WriteRune(c)
			continue
		}
		seen += ansi.PrintableRuneWidth(string(c))
	}
	if !kept {
		return ""
	}
	return b.String()
}
