package orchestrator

// State is the lifecycle phase of an Orchestrator. States only move
// forward and each is entered at most once.
type State int

const (
	StateIdle State = iota
	StateCleaning
	StateScanning
	StateWatching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCleaning:
		return "cleaning"
	case StateScanning:
		return "scanning"
	case StateWatching:
		return "watching"
	default:
		return "unknown"
	}
}
