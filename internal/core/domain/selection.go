package domain

// NoSelection is the OpenIndex value when no result row is open.
const NoSelection = -1

// SelectionState is the single source of truth for which result row is
// expanded and which document the viewer shows. DocumentURL is non-empty
// exactly when OpenIndex is not NoSelection.
type SelectionState struct {
	OpenIndex   int
	DocumentURL string
}

// ClosedSelection returns the state with no open row.
func ClosedSelection() SelectionState {
	return SelectionState{OpenIndex: NoSelection}
}

// IsOpen reports whether any row is open.
func (s SelectionState) IsOpen() bool {
	return s.OpenIndex != NoSelection
}
