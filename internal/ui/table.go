package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// cellPadding is the horizontal padding the table styles add around each cell.
const cellPadding = 2

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// ColumnSpec defines a column whose width is a percentage of the table width.
type ColumnSpec struct {
	Title   string
	Percent int
}

// ProportionalColumns splits totalWidth between the columns by percentage,
// after reserving the per-cell padding. Every column keeps at least one cell.
func ProportionalColumns(specs []ColumnSpec, totalWidth int) []TableColumn {
	usable := totalWidth - cellPadding*len(specs)
	if usable < 0 {
		usable = 0
	}

	cols := make([]TableColumn, len(specs))
	for i, s := range specs {
		w := usable * s.Percent / 100
		if w < 1 {
			w = 1
		}
		cols[i] = TableColumn{Title: s.Title, Width: w}
	}
	return cols
}

// DefaultTableStyles returns the Bubbles table styles used across promtui.
func DefaultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)
	return s
}

func toBubblesColumns(columns []TableColumn) []table.Column {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}
	return cols
}

// NewTable creates a table tall enough to show every row.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(toBubblesColumns(columns)),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)
	t.SetStyles(DefaultTableStyles())
	return t
}

// NewWindowTable creates a table of exactly height lines (header and rule
// included) and width columns, with the cursor on the given row. Callers pass
// only the rows that fit; the table does no scrolling of its own.
func NewWindowTable(columns []TableColumn, rows []table.Row, cursor, height, width int, styles table.Styles) table.Model {
	t := table.New(
		table.WithColumns(toBubblesColumns(columns)),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	t.SetStyles(styles)
	t.SetWidth(width)
	t.SetHeight(height)
	t.SetCursor(cursor)
	return t
}

// RenderSimpleTable renders a non-interactive table string for plain CLI output.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// FitColumns sizes each column to its widest cell (title included).
func FitColumns(titles []string, rows [][]string) []TableColumn {
	cols := make([]TableColumn, len(titles))
	for i, title := range titles {
		cols[i] = TableColumn{Title: title, Width: lipgloss.Width(title)}
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				if w := lipgloss.Width(row[i]); w > cols[i].Width {
					cols[i].Width = w
				}
			}
		}
	}
	return cols
}
