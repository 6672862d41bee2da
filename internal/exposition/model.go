// Package exposition turns a Prometheus/OpenMetrics text exposition into an
// ordered, immutable set of metric families.
//
// Syntax is handled by the expfmt text parser from prometheus/common; this
// package adds first-seen ordering, the "one family, one block" rule and a
// compact model the dashboard can summarize without touching protobuf types.
// OpenMetrics bodies are rewritten line for line into the text format first
// (see translateOpenMetrics), and their declared types are kept.
package exposition

import (
	"sort"
	"strings"

	"github.com/prometheus/common/model"
)

// Type is the declared type of a metric family.
type Type string

const (
	TypeCounter        Type = "counter"
	TypeGauge          Type = "gauge"
	TypeSummary        Type = "summary"
	TypeUntyped        Type = "untyped"
	TypeHistogram      Type = "histogram"
	TypeGaugeHistogram Type = "gaugehistogram"

	// OpenMetrics-only types.
	TypeInfo     Type = "info"
	TypeStateSet Type = "stateset"
	TypeUnknown  Type = "unknown"
)

// IsAggregate reports whether samples of this type carry several components
// (buckets or quantiles plus sum and count) rather than one value.
func (t Type) IsAggregate() bool {
	return t == TypeSummary || t == TypeHistogram || t == TypeGaugeHistogram
}

// Names of the aggregate components present on histogram and summary samples.
const (
	ValueSum   = "sum"
	ValueCount = "count"
)

// Label is one name/value pair of a label-set.
type Label struct {
	Name  string
	Value string
}

// Labels is a label-set sorted by label name.
type Labels []Label

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)

// String renders the label-set as `a="x", b="y"` using exposition escaping.
func (ls Labels) String() string {
	parts := make([]string, 0, len(ls))
	for _, l := range ls {
		parts = append(parts, l.Name+`="`+labelValueEscaper.Replace(l.Value)+`"`)
	}
	return strings.Join(parts, ", ")
}

// Key returns a canonical identity for the label-set. Two samples share a
// label-set exactly when their keys are equal.
func (ls Labels) Key() string {
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.Name)
		b.WriteByte(0xff)
		b.WriteString(l.Value)
		b.WriteByte(0xfe)
	}
	return b.String()
}

// Get returns the value of the named label.
func (ls Labels) Get(name string) (string, bool) {
	for _, l := range ls {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}

func sortLabels(ls Labels) {
	sort.Slice(ls, func(i, j int) bool { return ls[i].Name < ls[j].Name })
}

// Value is one numeric component of a sample. Name is empty for the single
// value of a counter, gauge or untyped sample.
type Value struct {
	Name   string
	Number float64
}

// Sample is one label-set of a family together with its value(s).
type Sample struct {
	Labels      Labels
	Values      []Value
	TimestampMs int64 // 0 when the line carried no timestamp
}

// Scalar returns the single unnamed value of a counter, gauge or untyped sample.
func (s Sample) Scalar() (float64, bool) {
	return s.Component("")
}

// Component returns the value with the given component name.
func (s Sample) Component(name string) (float64, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v.Number, true
		}
	}
	return 0, false
}

// Family groups every sample that shares one metric name.
type Family struct {
	Name    string
	Type    Type
	Help    string
	Samples []Sample
}

// LabelSets returns the number of distinct label-sets across the samples.
func (f Family) LabelSets() int {
	seen := make(map[string]struct{}, len(f.Samples))
	for _, s := range f.Samples {
		seen[s.Labels.Key()] = struct{}{}
	}
	return len(seen)
}

// Document is a parsed exposition. Families keep the order in which they
// first appear in the source text.
type Document struct {
	Families []Family
}

// Len returns the number of families.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Families)
}

// Names returns the family names in document order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.Families))
	for i, f := range d.Families {
		names[i] = f.Name
	}
	return names
}

// Family looks up a family by name.
func (d *Document) Family(name string) (Family, bool) {
	if d == nil {
		return Family{}, false
	}
	for _, f := range d.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// FormatNumber renders a sample value the way the text exposition does:
// shortest exact decimal, no exponent, NaN and +Inf/-Inf spelled out.
func FormatNumber(v float64) string {
	return model.SampleValue(v).String()
}
