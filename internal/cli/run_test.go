package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/promtui/internal/dashboard"
	"github.com/rileyhilliard/promtui/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCounter = `# HELP http_requests_total Total HTTP requests.
# TYPE http_requests_total counter
http_requests_total{method="GET"} 1027
`

// stubTerminal fakes TTY detection and records every model handed to the UI.
func stubTerminal(t *testing.T, tty bool) *[]tea.Model {
	t.Helper()
	t.Setenv("PROMTUI_TIMEOUT", "")
	t.Setenv("PROMTUI_USER_AGENT", "")

	origOut, origIn, origUI, origPrompt, origProgress := stdoutIsTerminal, stdinIsTerminal, startUI, promptEndpoint, progressOutput
	t.Cleanup(func() {
		stdoutIsTerminal, stdinIsTerminal, startUI, promptEndpoint, progressOutput = origOut, origIn, origUI, origPrompt, origProgress
	})

	var started []tea.Model
	stdoutIsTerminal = func() bool { return tty }
	stdinIsTerminal = func() bool { return tty }
	startUI = func(m tea.Model) error {
		started = append(started, m)
		return nil
	}
	promptEndpoint = func() (string, error) {
		t.Fatal("unexpected prompt")
		return "", nil
	}
	progressOutput = func() io.Writer { return nil }
	return &started
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func startedState(t *testing.T, started []tea.Model) dashboard.State {
	t.Helper()
	require.Len(t, started, 1)
	m, ok := started[0].(dashboard.Model)
	require.True(t, ok, "UI should be started with a dashboard.Model")
	return m.State()
}

func TestDashboardCommand_LoadsDocument(t *testing.T) {
	started := stubTerminal(t, true)
	srv := serve(t, http.StatusOK, scenarioCounter)

	err := dashboardCommand(context.Background(), srv.URL+"/metrics", &bytes.Buffer{})
	require.NoError(t, err)

	state := startedState(t, *started)
	assert.True(t, state.Loaded())
	assert.Equal(t, srv.URL+"/metrics", state.Endpoint())
	assert.Equal(t, []string{"http_requests_total"}, state.Document().Names())
	assert.Equal(t, 0, state.Offset())
}

func TestDashboardCommand_ProgressIsClearedBeforeUI(t *testing.T) {
	started := stubTerminal(t, true)
	srv := serve(t, http.StatusOK, scenarioCounter)

	var progress bytes.Buffer
	progressOutput = func() io.Writer { return &progress }

	err := dashboardCommand(context.Background(), srv.URL, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, *started, 1)

	got := progress.String()
	assert.Contains(t, got, "Fetching "+srv.URL+"...")
	assert.True(t, strings.HasSuffix(got, "\r"), "spinner line should be erased")
}

func TestDashboardCommand_ParseErrorStillStartsUI(t *testing.T) {
	started := stubTerminal(t, true)
	srv := serve(t, http.StatusOK, "bad line without a value\n")

	err := dashboardCommand(context.Background(), srv.URL, &bytes.Buffer{})
	require.NoError(t, err)

	state := startedState(t, *started)
	assert.True(t, state.Failed())
	assert.Nil(t, state.Document())
	assert.Equal(t, 0, state.RowCount())
}

func TestDashboardCommand_HTTPErrorNeverStartsUI(t *testing.T) {
	started := stubTerminal(t, true)
	srv := serve(t, http.StatusNotFound, "404 page not found\n")

	err := dashboardCommand(context.Background(), srv.URL+"/metrics", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
	assert.Empty(t, *started, "terminal UI must not start after a failed fetch")
}

func TestDashboardCommand_BadTimeoutStopsBeforeFetch(t *testing.T) {
	started := stubTerminal(t, true)
	t.Setenv("PROMTUI_TIMEOUT", "whenever")

	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer srv.Close()

	err := dashboardCommand(context.Background(), srv.URL, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.False(t, hit)
	assert.Empty(t, *started)
}

func TestDashboardCommand_UIError(t *testing.T) {
	stubTerminal(t, true)
	startUI = func(tea.Model) error { return assert.AnError }
	srv := serve(t, http.StatusOK, scenarioCounter)

	err := dashboardCommand(context.Background(), srv.URL, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
}

func TestDashboardCommand_PromptsForEndpoint(t *testing.T) {
	started := stubTerminal(t, true)
	srv := serve(t, http.StatusOK, scenarioCounter)
	promptEndpoint = func() (string, error) { return srv.URL, nil }

	err := dashboardCommand(context.Background(), "", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, srv.URL, startedState(t, *started).Endpoint())
}

func TestDashboardCommand_PromptCancelled(t *testing.T) {
	started := stubTerminal(t, true)
	promptEndpoint = func() (string, error) {
		return "", errors.New(errors.ErrConfig, "No endpoint given", "")
	}

	err := dashboardCommand(context.Background(), "", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Empty(t, *started)
}

func TestDashboardCommand_NoEndpointWithoutTerminal(t *testing.T) {
	started := stubTerminal(t, false)

	err := dashboardCommand(context.Background(), "", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "No endpoint given")
	assert.Empty(t, *started)
}

func TestDashboardCommand_PlainOutput(t *testing.T) {
	started := stubTerminal(t, false)
	srv := serve(t, http.StatusOK, scenarioCounter+`# TYPE temperature gauge
temperature{room="a"} 20
temperature{room="b"} 21
`)

	var out bytes.Buffer
	err := dashboardCommand(context.Background(), srv.URL, &out)
	require.NoError(t, err)
	assert.Empty(t, *started)

	got := out.String()
	assert.Contains(t, got, "Name")
	assert.Contains(t, got, "http_requests_total")
	assert.Contains(t, got, `method="GET" → 1027`)
	assert.Contains(t, got, "temperature")
	assert.Contains(t, got, "(multiple labelsets)")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("http_requests_total")), bytes.Index(out.Bytes(), []byte("temperature")))
}

func TestDashboardCommand_PlainOutputEmpty(t *testing.T) {
	stubTerminal(t, false)
	srv := serve(t, http.StatusOK, "")

	var out bytes.Buffer
	err := dashboardCommand(context.Background(), srv.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, "No metric families exposed at "+srv.URL+"\n", out.String())
}

func TestDashboardCommand_PlainOutputParseError(t *testing.T) {
	stubTerminal(t, false)
	srv := serve(t, http.StatusOK, "bad line without a value\n")

	var out bytes.Buffer
	err := dashboardCommand(context.Background(), srv.URL, &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
	assert.Contains(t, err.Error(), "line 1")
	assert.Empty(t, out.String())
}

func TestDashboardCommand_OpenMetricsBody(t *testing.T) {
	started := stubTerminal(t, true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/openmetrics-text; version=1.0.0; charset=utf-8")
		_, _ = w.Write([]byte("# HELP foo Foo.\n# TYPE foo counter\nfoo_total 17\nfoo_created 1.7e9\n# EOF\n"))
	}))
	defer srv.Close()

	err := dashboardCommand(context.Background(), srv.URL, &bytes.Buffer{})
	require.NoError(t, err)

	state := startedState(t, *started)
	require.True(t, state.Loaded())
	assert.Equal(t, []string{"foo"}, state.Document().Names())
}

func TestPromptError(t *testing.T) {
	err := promptError(huh.ErrUserAborted)
	code, ok := errors.GetExitCode(err)
	require.True(t, ok, "cancelling the prompt should exit quietly")
	assert.Equal(t, exitInterrupted, code)

	err = promptError(assert.AnError)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	_, ok = errors.GetExitCode(err)
	assert.False(t, ok)
}

func TestValidateEndpoint(t *testing.T) {
	assert.NoError(t, validateEndpoint("localhost:9100/metrics"))
	assert.NoError(t, validateEndpoint("  http://localhost:9100  "))
	assert.Error(t, validateEndpoint(""))
	assert.Error(t, validateEndpoint("   "))
	assert.Error(t, validateEndpoint("local host:9100"))
}
