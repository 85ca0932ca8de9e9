package lifecycle

// State is the engine's lifecycle phase. All public operations gate on it:
// nothing is emitted before an explicit Configure, and nothing is accepted
// after the drain signal.
type State int32

const (
	StateUnconfigured State = iota
	StateActive
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "UNCONFIGURED"
	case StateActive:
		return "ACTIVE"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}
