package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
)

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestComposeTopLeftWithOffset(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc\ndddddddd"
	out, r := Compose(bg, 8, 4, "XX\nYY", Placement{OffsetX: 2, OffsetY: 1})
	got := strings.Split(stripANSI(out), "\n")
	want := []string{"aaaaaaaa", "bbXXbbbb", "ccYYcccc", "dddddddd"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r != (Rect{X: 2, Y: 1, Width: 2, Height: 2}) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if !r.Contains(3, 2) || r.Contains(4, 2) || r.Contains(2, 0) {
		t.Fatalf("contains is off for %+v", r)
	}
}

func TestComposeClampsToBackground(t *testing.T) {
	out, r := Compose("", 4, 2, "123456\nabcdef\nzzz", Placement{Horizontal: lipgloss.Right, Vertical: lipgloss.Bottom})
	lines := strings.Split(stripANSI(out), "\n")
	if len(lines) != 2 || lines[0] != "1234" || lines[1] != "abcd" {
		t.Fatalf("unexpected output %q", lines)
	}
	if r.X != 0 || r.Y != 0 || r.Width != 4 || r.Height != 2 {
		t.Fatalf("unexpected rect %+v", r)
	}
}

func TestComposeKeepsStyledBackground(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abcdef")
	out, _ := Compose(styled, 6, 1, "X", Placement{Horizontal: lipgloss.Center})
	if got := stripANSI(out); got != "abcXef" && got != "abXdef" {
		t.Fatalf("unexpected centered output %q", got)
	}
}

func TestComposeWithoutForeground(t *testing.T) {
	out, r := Compose("hi", 4, 2, "", Placement{})
	if stripANSI(out) != "hi  \n    " || r != (Rect{}) {
		t.Fatalf("unexpected %q %+v", out, r)
	}
}
