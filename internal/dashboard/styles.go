package dashboard

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/promtui/internal/ui"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true)

	// ErrorStyle marks the parse failure as the one thing on screen.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Bold(true).
			Blink(true)
)

// familyTableStyles highlights the selected row black on bright green.
func familyTableStyles() table.Styles {
	s := ui.DefaultTableStyles()
	s.Selected = s.Selected.
		Foreground(ui.ColorInverse).
		Background(ui.ColorSelect)
	return s
}
