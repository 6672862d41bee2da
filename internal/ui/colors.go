package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors as ANSI codes for broad terminal compatibility.
const (
	ColorError  lipgloss.Color = "1"  // Red
	ColorInfo   lipgloss.Color = "6"  // Cyan
	ColorSelect lipgloss.Color = "10" // Bright green, the selected-row highlight
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
	ColorInverse lipgloss.Color = "0" // Black, text on highlighted backgrounds
)
