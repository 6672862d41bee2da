package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/promtui/internal/errors"
)

// promptForEndpoint asks for the metrics endpoint on an interactive terminal.
func promptForEndpoint() (string, error) {
	var endpoint string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Metrics endpoint").
				Description("host:port/path or a full http(s) URL").
				Placeholder("localhost:9100/metrics").
				Validate(validateEndpoint).
				Value(&endpoint),
		),
	)

	if err := form.Run(); err != nil {
		return "", promptError(err)
	}

	return strings.TrimSpace(endpoint), nil
}

// exitInterrupted is the conventional status for a run stopped by ctrl+c.
const exitInterrupted = 130

// promptError turns a failed prompt into the command's error. Cancelling the
// prompt exits quietly with exitInterrupted; anything else is reported.
func promptError(err error) error {
	if stderrors.Is(err, huh.ErrUserAborted) {
		return errors.NewExitError(exitInterrupted)
	}
	return errors.WrapWithCode(err, errors.ErrConfig,
		"No endpoint given",
		"Usage: promtui ENDPOINT, for example 'promtui localhost:9100/metrics'.")
}

func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("endpoint is required")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("endpoint can't contain spaces")
	}
	return nil
}
