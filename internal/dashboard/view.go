package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/promtui/internal/summary"
	"github.com/rileyhilliard/promtui/internal/ui"
)

// Frame size assumed until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

const (
	headerHeight      = 1
	tableHeaderHeight = 2 // titles and rule
)

var familyColumns = []ui.ColumnSpec{
	{Title: "Name", Percent: 60},
	{Title: "Type", Percent: 20},
	{Title: "Summary", Percent: 20},
}

// Render draws the state into a width x height frame. It has no side effects;
// output that does not fit is clipped.
func Render(s State, width, height int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	contentHeight := max(height-headerHeight, 1)

	var content string
	if s.Failed() {
		content = renderError(s, width, contentHeight)
	} else {
		content = renderFamilies(s, width, contentHeight)
	}

	return lipgloss.NewStyle().
		MaxWidth(width).
		MaxHeight(height).
		Render(renderHeader(s, width) + "\n" + content)
}

// renderHeader renders the single title line.
func renderHeader(s State, width int) string {
	title := TitleStyle.Render("promtui")

	var stats string
	switch {
	case s.Failed():
		stats = fmt.Sprintf(" | %s | parse error", s.Endpoint())
	case s.RowCount() == 0:
		stats = fmt.Sprintf(" | %s | 0 families", s.Endpoint())
	default:
		stats = fmt.Sprintf(" | %s | %s | row %d/%d",
			s.Endpoint(), pluralFamilies(s.RowCount()), s.Offset()+1, s.RowCount())
	}

	hints := help.New().ShortHelpView(keys.ShortHelp())

	line := title + StatsStyle.Render(stats) + "   " + hints
	return HeaderStyle.MaxWidth(width).Render(line)
}

func pluralFamilies(n int) string {
	if n == 1 {
		return "1 family"
	}
	return fmt.Sprintf("%d families", n)
}

// renderFamilies renders the family table, summarizing only the rows that
// fit in the content region.
func renderFamilies(s State, width, contentHeight int) string {
	columns := ui.ProportionalColumns(familyColumns, width)
	visible := max(contentHeight-tableHeaderHeight, 1)

	total := s.RowCount()
	if total == 0 {
		t := ui.NewWindowTable(columns, nil, 0, tableHeaderHeight+1, width, familyTableStyles())
		return t.View() + "\n" + LabelStyle.Render("No metric families exposed at "+s.Endpoint())
	}

	start, end := window(s.Offset(), visible, total)
	families := s.Document().Families

	rows := make([]table.Row, 0, end-start)
	for i := start; i < end; i++ {
		row := summary.Summarize(families[i])
		marker := ui.UnselectedMarker
		if i == s.Offset() {
			marker = ui.SelectedMarker
		}
		rows = append(rows, table.Row{marker + row.Name, row.Type, row.Summary})
	}

	t := ui.NewWindowTable(columns, rows, s.Offset()-start, visible+tableHeaderHeight, width, familyTableStyles())
	return t.View()
}

// window returns the [start, end) range of rows to draw so that the row at
// offset is visible. It depends only on its arguments. The table is handed
// only this slice, so its own scrolling never comes into play.
func window(offset, visible, total int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	start := 0
	if offset >= visible {
		start = offset - visible + 1
	}
	end := min(start+visible, total)
	return start, end
}

// renderError replaces the table with the parse failure. The endpoint line is
// never wrapped so the address stays in one piece; when the whole message is
// wider than the frame, the reason moves to the following lines and wraps.
func renderError(s State, width, contentHeight int) string {
	head := fmt.Sprintf("%s Metrics from %s", ui.SymbolFail, s.Endpoint())
	reason := fmt.Sprintf("could not be parsed: %v", s.Err())

	var msg string
	if line := head + " " + reason; lipgloss.Width(line) <= width {
		msg = ErrorStyle.Render(line)
	} else {
		msg = ErrorStyle.Render(head) + "\n" + ErrorStyle.Width(width).Render(reason)
	}

	return lipgloss.NewStyle().
		MaxHeight(contentHeight).
		Render(msg)
}
