package lookup

// State is the controller's display state.
type State int

const (
	// StateIdle means the query is too short to look up.
	StateIdle State = iota
	// StateLoading means a backend request is in flight.
	StateLoading
	// StateReady means Result holds the answer for the current query.
	StateReady
	// StateError means the last lookup failed; Result is empty and errored.
	StateError
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
