package exposition

import (
	"fmt"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Suffixes the text parser folds into a typed histogram or summary family.
var aggregateSuffixes = []string{"_bucket", "_sum", "_count"}

// familyOrder walks the text once more and returns family names in order of
// first appearance. A family whose lines resume after another family started
// is rejected as being defined twice.
func familyOrder(text string, families map[string]*dto.MetricFamily) ([]string, error) {
	order := make([]string, 0, len(families))
	seen := make(map[string]bool, len(families))
	current := ""

	for i, line := range strings.Split(text, "\n") {
		name := lineMetricName(line)
		if name == "" {
			continue
		}
		key := familyKey(name, families)
		if key == "" || key == current {
			continue
		}
		if seen[key] {
			return nil, &ParseError{
				Line:    i + 1,
				Content: strings.TrimRight(line, "\r"),
				Reason:  fmt.Sprintf("metric family %q appears more than once", key),
			}
		}
		seen[key] = true
		order = append(order, key)
		current = key
	}

	return order, nil
}

// familyKey maps a metric name from a line to the family the parser put it in.
func familyKey(name string, families map[string]*dto.MetricFamily) string {
	if _, ok := families[name]; ok {
		return name
	}
	for _, suffix := range aggregateSuffixes {
		base, ok := strings.CutSuffix(name, suffix)
		if !ok {
			continue
		}
		mf, ok := families[base]
		if !ok {
			continue
		}
		switch mf.GetType() {
		case dto.MetricType_HISTOGRAM, dto.MetricType_GAUGE_HISTOGRAM:
			return base
		case dto.MetricType_SUMMARY:
			if suffix != "_bucket" {
				return base
			}
		}
	}
	return ""
}

// lineMetricName extracts the metric name a line refers to: the subject of a
// HELP/TYPE comment or the name of a sample. Blank lines and plain comments
// yield "".
func lineMetricName(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		fields := strings.Fields(trimmed[1:])
		if len(fields) < 2 || (fields[0] != "HELP" && fields[0] != "TYPE") {
			return ""
		}
		return unquoteName(fields[1])
	}

	if trimmed[0] == '{' {
		// UTF-8 names are written as the first, quoted, entry of the braces.
		inner := strings.TrimLeft(trimmed[1:], " \t")
		if end := closingQuote(inner); end > 0 {
			return unquoteName(inner[:end+1])
		}
		return ""
	}

	if end := strings.IndexAny(trimmed, "{ \t"); end >= 0 {
		return trimmed[:end]
	}
	return strings.TrimRight(trimmed, "\r")
}

func unquoteName(s string) string {
	if len(s) >= 2 && s[0] == '"' {
		if unq, err := strconv.Unquote(s); err == nil {
			return unq
		}
	}
	return s
}

// closingQuote returns the index of the quote closing the string that opens s,
// or -1 when s does not start with a complete quoted string.
func closingQuote(s string) int {
	if s == "" || s[0] != '"' {
		return -1
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
