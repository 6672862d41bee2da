package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	state    State
	width    int
	height   int
	quitting bool
}

// NewModel creates a dashboard model around an initial state.
func NewModel(state State) Model {
	return Model{state: state}
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Init has nothing to start: the document is already loaded.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.state, m.width, m.height)
}
