package dashboard

import (
	"github.com/rileyhilliard/promtui/internal/exposition"
)

// State is what the dashboard shows. It is a plain value: transitions return
// a new State and rendering only reads it.
type State struct {
	endpoint string
	doc      *exposition.Document
	err      error
	offset   int
}

// NewState builds the state for one session. A non-nil err makes the state
// Failed for its whole lifetime; otherwise it is Loaded with doc.
func NewState(endpoint string, doc *exposition.Document, err error) State {
	if err != nil {
		doc = nil
	} else if doc == nil {
		doc = &exposition.Document{}
	}
	return State{endpoint: endpoint, doc: doc, err: err}
}

// Endpoint returns the endpoint the document was fetched from.
func (s State) Endpoint() string { return s.endpoint }

// Document returns the parsed document, nil when Failed.
func (s State) Document() *exposition.Document { return s.doc }

// Err returns the parse error, nil when Loaded.
func (s State) Err() error { return s.err }

// Loaded reports whether the exposition parsed.
func (s State) Loaded() bool { return s.err == nil }

// Failed reports whether the exposition was rejected.
func (s State) Failed() bool { return s.err != nil }

// Offset is the index of the selected row.
func (s State) Offset() int { return s.offset }

// RowCount is the number of rows handed to the table: one per family, none
// when Failed.
func (s State) RowCount() int {
	if s.Failed() {
		return 0
	}
	return s.doc.Len()
}

// MaxOffset is the largest valid offset.
func (s State) MaxOffset() int {
	return max(0, s.RowCount()-1)
}

// ScrollDown moves the selection one row down, stopping at the last row.
func (s State) ScrollDown() State {
	s.offset = min(s.offset+1, s.MaxOffset())
	return s
}

// ScrollUp moves the selection one row up, stopping at the first row.
func (s State) ScrollUp() State {
	s.offset = max(s.offset-1, 0)
	return s
}
