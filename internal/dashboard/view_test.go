package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/promtui/internal/exposition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SingleLabelSet(t *testing.T) {
	doc, err := exposition.Parse("http_requests_total{method=\"GET\"} 1027\n")
	require.NoError(t, err)
	s := NewState(testEndpoint, doc, nil)

	out := Render(s, 160, 20)
	assert.Contains(t, out, "promtui")
	assert.Contains(t, out, testEndpoint)
	assert.Contains(t, out, "1 family")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Type")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, ">> http_requests_total")
	assert.Contains(t, out, "untyped")
	assert.Contains(t, out, `method="GET" → 1027`)
}

func TestRender_MultipleLabelSets(t *testing.T) {
	doc, err := exposition.Parse(`http_requests_total{method="GET"} 1027
http_requests_total{method="POST"} 3
`)
	require.NoError(t, err)

	out := Render(NewState(testEndpoint, doc, nil), 160, 20)
	assert.Contains(t, out, "(multiple labelsets)")
	assert.NotContains(t, out, "1027")
}

func TestRender_ParseFailure(t *testing.T) {
	s := failedState(t)

	out := Render(s, 300, 20)
	assert.Contains(t, out, "Metrics from "+testEndpoint+" could not be parsed")
	assert.Contains(t, out, "bad line without a value")
	assert.Contains(t, out, "parse error")
	assert.NotContains(t, out, "Summary", "no table when the parse failed")
}

func TestRender_ParseFailureKeepsLongEndpointWhole(t *testing.T) {
	endpoint := "http://metrics-gateway-01.staging.example.com:9091/metrics"
	_, err := exposition.Parse("bad line without a value\n")
	require.Error(t, err)
	s := NewState(endpoint, nil, err)

	out := Render(s, 80, 24)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 2)

	// Line 0 is the header, which also names the endpoint; look below it.
	found := false
	for _, line := range lines[1:] {
		if strings.Contains(line, endpoint) {
			found = true
		}
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
	assert.True(t, found, "the endpoint should appear unbroken on one line")
	assert.Contains(t, out, "could not be parsed")
	assert.Contains(t, out, "expected float as value")
}

func TestRender_EmptyDocument(t *testing.T) {
	s := NewState(testEndpoint, &exposition.Document{}, nil)

	out := Render(s, 120, 20)
	assert.Contains(t, out, "0 families")
	assert.Contains(t, out, "No metric families exposed")
}

func TestRender_DocumentOrder(t *testing.T) {
	out := Render(loadedState(t, 3), 120, 20)

	first := strings.Index(out, "fam_00")
	second := strings.Index(out, "fam_01")
	third := strings.Index(out, "fam_02")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.True(t, first < second && second < third)
}

func TestRender_SelectionFollowsOffset(t *testing.T) {
	s := loadedState(t, 50)
	for i := 0; i < 20; i++ {
		s = s.ScrollDown()
	}

	// 12 lines: header + table titles + rule leave 9 rows.
	out := Render(s, 120, 12)
	assert.Contains(t, out, ">> fam_20")
	assert.Contains(t, out, "fam_12")
	assert.NotContains(t, out, "fam_11")
	assert.NotContains(t, out, "fam_21")
	assert.Contains(t, out, "row 21/50")
}

func TestRender_FitsFrame(t *testing.T) {
	sizes := []struct{ w, h int }{{120, 12}, {40, 6}, {10, 2}, {1, 1}}

	for _, s := range []State{loadedState(t, 30), failedState(t)} {
		for _, size := range sizes {
			out := Render(s, size.w, size.h)
			assert.LessOrEqual(t, lipgloss.Height(out), size.h)
			assert.LessOrEqual(t, lipgloss.Width(out), size.w)
		}
	}
}

func TestRender_DefaultsBeforeFirstResize(t *testing.T) {
	out := Render(loadedState(t, 100), 0, 0)
	assert.LessOrEqual(t, lipgloss.Height(out), defaultHeight)
	assert.LessOrEqual(t, lipgloss.Width(out), defaultWidth)
	assert.Contains(t, out, ">> fam_00")
}

func TestRender_DoesNotMutateState(t *testing.T) {
	s := loadedState(t, 5).ScrollDown()
	before := s

	_ = Render(s, 100, 10)
	assert.Equal(t, before, s)
	assert.Equal(t, Render(s, 100, 10), Render(s, 100, 10))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                   string
		offset, visible, total int
		wantStart, wantEnd     int
	}{
		{"fits", 0, 10, 3, 0, 3},
		{"top", 0, 5, 20, 0, 5},
		{"inside first page", 4, 5, 20, 0, 5},
		{"scrolled", 5, 5, 20, 1, 6},
		{"last row", 19, 5, 20, 15, 20},
		{"zero visible", 3, 0, 20, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.offset, tt.visible, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.True(t, tt.offset >= start && tt.offset < end, "offset stays visible")
		})
	}
}
