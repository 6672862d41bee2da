package exposition

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// ParseError describes why an exposition was rejected. Line is 1-based and
// zero when the failure is not tied to a single line.
type ParseError struct {
	Line    int
	Content string
	Reason  string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Content != "":
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Content)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	default:
		return e.Reason
	}
}

// Parse reads a complete exposition in the Prometheus text format, or in the
// OpenMetrics text format when it ends with "# EOF". Any malformed line
// rejects the whole document: the result is either a full Document or a
// *ParseError, never both.
func Parse(text string) (*Document, error) {
	return ParseContent(text, "")
}

// ParseContent is Parse for a body served with the given Content-Type, which
// selects OpenMetrics when it says application/openmetrics-text.
func ParseContent(text, contentType string) (*Document, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	input := text
	var declared map[string]Type
	if IsOpenMetrics(text, contentType) {
		input, declared = translateOpenMetrics(text)
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(input))
	if err != nil {
		return nil, newParseError(text, err)
	}

	order, err := familyOrder(input, families)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Content = lineAt(text, perr.Line)
		}
		return nil, err
	}

	doc := &Document{Families: make([]Family, 0, len(families))}
	placed := make(map[string]bool, len(order))
	for _, name := range order {
		doc.Families = append(doc.Families, convertFamily(families[name], declared))
		placed[name] = true
	}

	// Names the line scan could not attribute (exotic quoting) still belong in
	// the document; they go last in a stable order.
	var rest []string
	for name := range families {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		doc.Families = append(doc.Families, convertFamily(families[name], declared))
	}

	return doc, nil
}

func newParseError(text string, err error) *ParseError {
	var perr expfmt.ParseError
	if !errors.As(err, &perr) {
		return &ParseError{Reason: err.Error()}
	}
	return &ParseError{
		Line:    perr.Line,
		Content: lineAt(text, perr.Line),
		Reason:  perr.Msg,
	}
}

func lineAt(text string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// convertFamily copies a parsed family into the document model. declared
// overrides the type for OpenMetrics families read under a stand-in type.
func convertFamily(mf *dto.MetricFamily, declared map[string]Type) Family {
	f := Family{
		Name:    mf.GetName(),
		Type:    Type(strings.ToLower(strings.ReplaceAll(mf.GetType().String(), "_", ""))),
		Help:    mf.GetHelp(),
		Samples: make([]Sample, 0, len(mf.GetMetric())),
	}
	if t, ok := declared[f.Name]; ok {
		f.Type = t
	}
	for _, m := range mf.GetMetric() {
		f.Samples = append(f.Samples, convertMetric(m))
	}
	return f
}

func convertMetric(m *dto.Metric) Sample {
	labels := make(Labels, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		labels = append(labels, Label{Name: lp.GetName(), Value: lp.GetValue()})
	}
	sortLabels(labels)

	s := Sample{Labels: labels, TimestampMs: m.GetTimestampMs()}

	switch {
	case m.Counter != nil:
		s.Values = []Value{{Number: m.GetCounter().GetValue()}}
	case m.Gauge != nil:
		s.Values = []Value{{Number: m.GetGauge().GetValue()}}
	case m.Untyped != nil:
		s.Values = []Value{{Number: m.GetUntyped().GetValue()}}
	case m.Summary != nil:
		sum := m.GetSummary()
		for _, q := range sum.GetQuantile() {
			s.Values = append(s.Values, Value{
				Name:   "quantile{quantile=" + strconv.Quote(FormatNumber(q.GetQuantile())) + "}",
				Number: q.GetValue(),
			})
		}
		s.Values = append(s.Values,
			Value{Name: ValueSum, Number: sum.GetSampleSum()},
			Value{Name: ValueCount, Number: float64(sum.GetSampleCount())},
		)
	case m.Histogram != nil:
		h := m.GetHistogram()
		for _, b := range h.GetBucket() {
			s.Values = append(s.Values, Value{
				Name:   "bucket{le=" + strconv.Quote(FormatNumber(b.GetUpperBound())) + "}",
				Number: float64(b.GetCumulativeCount()),
			})
		}
		s.Values = append(s.Values,
			Value{Name: ValueSum, Number: h.GetSampleSum()},
			Value{Name: ValueCount, Number: float64(h.GetSampleCount())},
		)
	}

	return s
}
