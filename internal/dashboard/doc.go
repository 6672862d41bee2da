// Package dashboard implements the interactive TUI that lists the metric
// families of one exposition document.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - State: the parsed document or the parse error, plus the scroll offset
//   - Model: the Bubble Tea model; the only mutator of State
//   - Render: a pure function from (State, width, height) to the screen
//
// # Message Flow
//
// The document is fetched and parsed before the program starts and never
// changes afterwards, so there are no ticks or background commands:
//
//  1. tea.WindowSizeMsg records the frame area
//  2. tea.KeyMsg is mapped to a State transition (or quit)
//  3. View() re-renders from the new State
//
// # Layout
//
// One header line (title, endpoint, family count, position, key hints) and a
// content region holding either the family table (name 60%, type 20%,
// summary 20%) or, when the exposition failed to parse, the error.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	↑ / ↓       - Move the selection one row
//
// Every other key is ignored.
package dashboard
