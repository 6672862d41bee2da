package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyScrollUp   = "up"
	KeyScrollDown = "down"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns the bindings shown in the header.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns all bindings grouped into rows.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys(KeyScrollUp),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys(KeyScrollDown),
		key.WithHelp("↓", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys(KeyQuit, KeyQuitAlt),
		key.WithHelp("q", "quit"),
	),
}

// HandleKeyMsg applies one key press to the model.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Down):
		m.state = m.state.ScrollDown()
		return true, nil

	case key.Matches(msg, keys.Up):
		m.state = m.state.ScrollUp()
		return true, nil
	}

	return false, nil
}
