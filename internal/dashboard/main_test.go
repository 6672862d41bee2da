package dashboard

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Plain output keeps assertions independent of the test runner's terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}
