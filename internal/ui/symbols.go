package ui

// SymbolFail prefixes error messages.
const SymbolFail = "✗"

// SelectedMarker prefixes the selected row of a table; UnselectedMarker keeps
// the other rows aligned with it.
const (
	SelectedMarker   = ">> "
	UnselectedMarker = "   "
)
