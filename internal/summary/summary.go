// Package summary reduces each metric family to a single display row.
package summary

import (
	"github.com/rileyhilliard/promtui/internal/exposition"
)

// MultipleLabelSets is shown instead of a value when a family holds more than
// one label-set. One row per family is the layout; label-sets are not expanded.
const MultipleLabelSets = "(multiple labelsets)"

// Arrow separates a label-set from its value.
const Arrow = " → "

// Row is the display form of one family.
type Row struct {
	Name    string
	Type    string
	Summary string
}

// Cells returns the row as table cells in column order.
func (r Row) Cells() []string {
	return []string{r.Name, r.Type, r.Summary}
}

// Summarize builds the row for a family. It is pure and safe to call on every
// frame.
func Summarize(f exposition.Family) Row {
	row := Row{Name: f.Name, Type: string(f.Type)}

	switch f.LabelSets() {
	case 0:
		return row
	case 1:
		// Repeated lines for one label-set: the last one wins.
		s := f.Samples[len(f.Samples)-1]
		value := formatValue(f.Type, s)
		if len(s.Labels) == 0 {
			row.Summary = value
		} else {
			row.Summary = s.Labels.String() + Arrow + value
		}
	default:
		row.Summary = MultipleLabelSets
	}

	return row
}

// Rows summarizes every family of a document, in document order.
func Rows(doc *exposition.Document) []Row {
	rows := make([]Row, 0, doc.Len())
	if doc == nil {
		return rows
	}
	for _, f := range doc.Families {
		rows = append(rows, Summarize(f))
	}
	return rows
}

// formatValue renders a sample as one short string. Histograms and summaries
// collapse to their count and sum so the row stays on one line.
func formatValue(t exposition.Type, s exposition.Sample) string {
	if t.IsAggregate() {
		count, _ := s.Component(exposition.ValueCount)
		sum, _ := s.Component(exposition.ValueSum)
		return "count=" + exposition.FormatNumber(count) + " sum=" + exposition.FormatNumber(sum)
	}
	if v, ok := s.Scalar(); ok {
		return exposition.FormatNumber(v)
	}
	if len(s.Values) > 0 {
		return exposition.FormatNumber(s.Values[0].Number)
	}
	return ""
}
