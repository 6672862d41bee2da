package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/promtui/internal/config"
	"github.com/rileyhilliard/promtui/internal/dashboard"
	"github.com/rileyhilliard/promtui/internal/errors"
	"github.com/rileyhilliard/promtui/internal/exposition"
	"github.com/rileyhilliard/promtui/internal/fetch"
	"github.com/rileyhilliard/promtui/internal/logger"
	"github.com/rileyhilliard/promtui/internal/summary"
	"github.com/rileyhilliard/promtui/internal/ui"
	"golang.org/x/term"
)

// Seams swapped out by tests.
var (
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	stdinIsTerminal  = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	promptEndpoint   = promptForEndpoint
	startUI          = runProgram
	progressOutput   = func() io.Writer {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return os.Stderr
		}
		return nil
	}
)

var plainColumns = []string{"Name", "Type", "Summary"}

// dashboardCommand fetches the endpoint once, parses it, and shows the result.
// Fetch failures return before the terminal is touched. Parse failures are
// shown inside the dashboard.
func dashboardCommand(ctx context.Context, endpoint string, out io.Writer) error {
	log := logger.Default()

	cfg, err := config.Load(GetVersion())
	if err != nil {
		return err
	}

	if endpoint == "" {
		if !stdinIsTerminal() || !stdoutIsTerminal() {
			return errors.New(errors.ErrConfig,
				"No endpoint given",
				"Usage: promtui ENDPOINT, for example 'promtui localhost:9100/metrics'.")
		}
		endpoint, err = promptEndpoint()
		if err != nil {
			return err
		}
	}

	client, err := fetch.NewClient(fetch.Options{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	}, log)
	if err != nil {
		return err
	}

	resp, err := fetchWithProgress(ctx, client, endpoint)
	if err != nil {
		return err
	}

	doc, parseErr := exposition.ParseContent(resp.Body, resp.ContentType)
	if parseErr != nil {
		log.Debug("parse %s: %v", endpoint, parseErr)
	} else {
		log.Debug("parsed %d families from %s", doc.Len(), endpoint)
	}

	if !stdoutIsTerminal() {
		return printPlain(out, endpoint, doc, parseErr)
	}

	if err := startUI(dashboard.NewModel(dashboard.NewState(endpoint, doc, parseErr))); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"The dashboard stopped unexpectedly",
			"Run promtui from an interactive terminal, or pipe its output to get a plain table.")
	}
	return nil
}

// fetchWithProgress shows a spinner on stderr while the request is in flight.
// The spinner line is erased before returning, so nothing is left behind when
// the dashboard or an error takes over.
func fetchWithProgress(ctx context.Context, client *fetch.Client, endpoint string) (*fetch.Response, error) {
	if out := progressOutput(); out != nil {
		spin := ui.NewSpinner("Fetching "+fetch.NormalizeEndpoint(endpoint), out)
		spin.Start()
		defer spin.Stop()
	}
	return client.Fetch(ctx, endpoint)
}

// printPlain writes the family table without any terminal control sequences.
func printPlain(out io.Writer, endpoint string, doc *exposition.Document, parseErr error) error {
	if parseErr != nil {
		return errors.WrapWithCode(parseErr, errors.ErrParse,
			fmt.Sprintf("Metrics from %s could not be parsed", endpoint),
			"Check that the endpoint serves the Prometheus text exposition format.")
	}

	if doc.Len() == 0 {
		_, err := fmt.Fprintf(out, "No metric families exposed at %s\n", endpoint)
		return err
	}

	rows := summary.Rows(doc)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Cells()
	}

	_, err := fmt.Fprintln(out, ui.RenderSimpleTable(ui.FitColumns(plainColumns, cells), cells))
	return err
}

// runProgram runs the dashboard on the alternate screen. Bubble Tea puts the
// terminal in raw mode and restores it when Run returns, panics included.
func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
