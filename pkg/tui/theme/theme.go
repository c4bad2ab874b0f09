package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/dateslicer/pkg/settings"
)

// rangeTint is how far the in-range fill moves from the background
// toward the accent.
const rangeTint = 0.2

// Theme centralizes Lip Gloss styles for the picker.
type Theme struct {
	Calendar CalendarTheme
	Sidebar  SidebarTheme
	Summary  SummaryTheme
	Footer   FooterTheme
	Popup    lipgloss.Style
}

// CalendarTheme styles the month header and day grid.
type CalendarTheme struct {
	Title      lipgloss.Style
	Arrow      lipgloss.Style
	Weekday    lipgloss.Style
	Day        lipgloss.Style
	OtherMonth lipgloss.Style
	// Today and Cursor are laid over a day's own style.
	Today      lipgloss.Style
	InRange    lipgloss.Style
	RangeEdge  lipgloss.Style
	Cursor     lipgloss.Style
	Field      lipgloss.Style
	Label      lipgloss.Style
	Toggle     lipgloss.Style
}

// SidebarTheme styles the preset list.
type SidebarTheme struct {
	Title  lipgloss.Style
	Preset lipgloss.Style
	Key    lipgloss.Style
}

// SummaryTheme styles the compact summary control.
type SummaryTheme struct {
	Pill        lipgloss.Style
	Placeholder lipgloss.Style
}

// FooterTheme styles the key help line.
type FooterTheme struct {
	Help lipgloss.Style
}

// Default returns the theme for the built-in colors.
func Default() Theme {
	return New(settings.Default().Appearance)
}

// New derives the styles from the four appearance colors.
func New(app settings.Appearance) Theme {
	accent := lipgloss.Color(settings.Color(app.Accent, settings.DefaultAccent))
	bg := lipgloss.Color(settings.Color(app.Background, settings.DefaultBackground))
	text := lipgloss.Color(settings.Color(app.Text, settings.DefaultText))
	border := lipgloss.Color(settings.Color(app.Border, settings.DefaultBorder))
	tint := lipgloss.Color(Tint(app.Background, app.Accent, rangeTint))

	base := lipgloss.NewStyle().Foreground(text)
	return Theme{
		Calendar: CalendarTheme{
			Title:      base.Bold(true),
			Arrow:      lipgloss.NewStyle().Foreground(accent).Bold(true),
			Weekday:    lipgloss.NewStyle().Foreground(border).Bold(true),
			Day:        base,
			OtherMonth: lipgloss.NewStyle().Foreground(border),
			Today:      lipgloss.NewStyle().Underline(true),
			InRange:    base.Background(tint),
			RangeEdge:  lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true),
			Cursor:     lipgloss.NewStyle().Reverse(true),
			Field:      base.Underline(true),
			Label:      lipgloss.NewStyle().Foreground(border),
			Toggle:     lipgloss.NewStyle().Foreground(accent),
		},
		Sidebar: SidebarTheme{
			Title:  base.Bold(true),
			Preset: base,
			Key:    lipgloss.NewStyle().Foreground(accent),
		},
		Summary: SummaryTheme{
			Pill: base.
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Placeholder: lipgloss.NewStyle().Foreground(border).Italic(true),
		},
		Footer: FooterTheme{
			Help: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// Tint blends from toward to by t in Lab space and returns the hex color.
// Unparsable colors fall back to the defaults.
func Tint(from, to string, t float64) string {
	a, err := colorful.Hex(settings.Color(from, settings.DefaultBackground))
	if err != nil {
		return settings.DefaultBackground
	}
	b, err := colorful.Hex(settings.Color(to, settings.DefaultAccent))
	if err != nil {
		return settings.DefaultAccent
	}
	switch {
	case t <= 0:
		return a.Hex()
	case t >= 1:
		return b.Hex()
	}
	return a.BlendLab(b, t).Clamped().Hex()
}
