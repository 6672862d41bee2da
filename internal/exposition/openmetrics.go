package exposition

import (
	"math"
	"mime"
	"strconv"
	"strings"

	"github.com/prometheus/common/expfmt"
)

// openMetricsTypes maps the OpenMetrics-only types onto the text-format type
// the parser reads their samples as. The declared type is restored afterwards.
var openMetricsTypes = map[string]string{
	string(TypeGaugeHistogram): string(TypeHistogram),
	string(TypeInfo):           string(TypeGauge),
	string(TypeStateSet):       string(TypeGauge),
	string(TypeUnknown):        string(TypeUntyped),
}

// createdSuffixTypes are the types whose families may carry a _created series.
var createdSuffixTypes = map[string]bool{
	string(TypeCounter):        true,
	string(TypeHistogram):      true,
	string(TypeGaugeHistogram): true,
	string(TypeSummary):        true,
}

const eofMarker = "# EOF"

// IsOpenMetrics reports whether a body is in the OpenMetrics text format,
// either by its media type or by the terminating "# EOF" line.
func IsOpenMetrics(text, contentType string) bool {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == expfmt.OpenMetricsType {
			return true
		}
	}
	trimmed := strings.TrimRight(text, "\n\r\t ")
	last := trimmed[strings.LastIndexByte(trimmed, '\n')+1:]
	return strings.TrimSpace(last) == eofMarker
}

// translateOpenMetrics rewrites an OpenMetrics body into the text format
// line for line, so parser line numbers still point at the original input.
// Counter samples lose their _total suffix, _created series and the EOF
// marker become blank lines, exemplars are cut and timestamps turn from
// seconds into milliseconds. The returned map holds the families whose
// declared type the text format cannot express.
func translateOpenMetrics(text string) (string, map[string]Type) {
	lines := strings.Split(text, "\n")
	types := make(map[string]string)
	declared := make(map[string]Type)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case trimmed == eofMarker:
			lines[i] = ""
		case strings.HasPrefix(trimmed, "#"):
			fields := strings.Fields(trimmed[1:])
			if len(fields) != 3 || fields[0] != "TYPE" {
				continue
			}
			name, typ := fields[1], fields[2]
			types[name] = typ
			if mapped, ok := openMetricsTypes[typ]; ok {
				lines[i] = "# TYPE " + name + " " + mapped
				declared[unquoteName(name)] = Type(typ)
			}
		default:
			lines[i] = translateSample(line, types)
		}
	}

	return strings.Join(lines, "\n"), declared
}

// translateSample rewrites one sample line; a line that should be dropped
// comes back empty.
func translateSample(line string, types map[string]string) string {
	line = strings.TrimLeft(line, " \t")
	end := strings.IndexAny(line, "{ \t")
	if end <= 0 {
		// No value, or a quoted name inside the braces: leave it to the parser.
		return line
	}

	name, ok := openMetricsSampleName(line[:end], types)
	if !ok {
		return ""
	}

	rest := line[end:]
	labels := ""
	if strings.HasPrefix(rest, "{") {
		brace := closingBrace(rest)
		if brace < 0 {
			return line
		}
		labels, rest = rest[:brace+1], rest[brace+1:]
	}

	// Exemplars follow the value as " # {labels} value".
	if hash := strings.IndexByte(rest, '#'); hash >= 0 {
		rest = rest[:hash]
	}

	fields := strings.Fields(rest)
	if len(fields) == 2 {
		if secs, err := strconv.ParseFloat(fields[1], 64); err == nil {
			fields[1] = strconv.FormatInt(int64(math.Round(secs*1000)), 10)
		}
	}

	return name + labels + " " + strings.Join(fields, " ")
}

// openMetricsSampleName returns the text-format name of an OpenMetrics
// sample, or false when the sample is a _created series.
func openMetricsSampleName(name string, types map[string]string) (string, bool) {
	if _, ok := types[name]; ok {
		return name, true
	}
	if base, ok := strings.CutSuffix(name, "_created"); ok && createdSuffixTypes[types[base]] {
		return "", false
	}
	if base, ok := strings.CutSuffix(name, "_total"); ok && types[base] == string(TypeCounter) {
		return base, true
	}
	if base, ok := strings.CutSuffix(name, "_info"); ok && types[base] == string(TypeInfo) {
		return base, true
	}
	if base, ok := strings.CutSuffix(name, "_gcount"); ok && types[base] == string(TypeGaugeHistogram) {
		return base + "_count", true
	}
	if base, ok := strings.CutSuffix(name, "_gsum"); ok && types[base] == string(TypeGaugeHistogram) {
		return base + "_sum", true
	}
	return name, true
}

// closingBrace returns the index of the brace closing the label-set that
// opens s, skipping quoted label values, or -1.
func closingBrace(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			end := closingQuote(s[i:])
			if end < 0 {
				return -1
			}
			i += end
		case '}':
			return i
		}
	}
	return -1
}
