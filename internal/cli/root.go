package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/promtui/internal/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promtui [ENDPOINT]",
		Short: "Browse a Prometheus metrics endpoint in the terminal",
		Long: `Fetch a Prometheus text exposition once and browse its metric families
in a scrollable table.

ENDPOINT is host:port, host:port/path or a full http(s) URL. When it has
no scheme, http:// is assumed. On an interactive terminal you are asked
for it when omitted.

Keys: up/down scroll, q quits.

Environment:
  PROMTUI_TIMEOUT     request timeout (default 10s)
  PROMTUI_USER_AGENT  User-Agent header sent with the request
  PROMTUI_DEBUG       log fetch and parse details to stderr

Examples:
  promtui localhost:9100/metrics
  promtui http://localhost:8080/metrics
  promtui localhost:9100/metrics | less`,
		Args:          cobra.MaximumNArgs(1),
		Version:       formatVersion(version),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := ""
			if len(args) == 1 {
				endpoint = args[0]
			}
			return dashboardCommand(cmd.Context(), endpoint, cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate(versionTemplate())
	return cmd
}

// Execute runs the root command and exits the process with its status.
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command with the given arguments and returns the
// process exit code: 0 on success, 1 (or an ExitError's code) on
// failure.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	printError(stderr, err)
	return 1
}

// printError writes structured errors as-is and anything else (cobra's own
// argument errors, mostly) in the same ✗ shape with a usage hint.
func printError(w io.Writer, err error) {
	if _, ok := err.(*errors.Error); ok {
		fmt.Fprint(w, err.Error())
		return
	}
	fmt.Fprint(w, errors.WrapWithCode(err, errors.ErrConfig,
		"Invalid arguments",
		"Usage: promtui [ENDPOINT]. Run 'promtui --help' for details.").Error())
}
