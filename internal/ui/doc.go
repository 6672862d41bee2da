// Package ui holds the terminal styling shared by the dashboard and the plain
// (non-interactive) output: the ANSI palette, status symbols and the Bubbles
// table construction used for metric family listings.
//
// Tables come in two shapes:
//
//	NewTable / RenderSimpleTable - every row, sized to fit, for piped output
//	NewWindowTable               - a fixed-height window with a cursor, for the TUI
//
// Column widths for the TUI are derived from percentages of the terminal width
// with ProportionalColumns.
//
// Spinner is the one-line progress indicator drawn on stderr while the metrics
// request is in flight, before any full-screen UI exists.
package ui
