// internal/player/state.go
package player

// State is the lifecycle of one media handle.
//
//	┌─────────┐  decoded   ┌────────┐   play    ┌─────────┐
//	│ Loading │──────────▶│ Paused │──────────▶│ Playing │
//	└─────────┘            └────────┘◀──────────└─────────┘
//	     │                     ▲        pause        │
//	     │ error               │ play (rewind)       │ end of stream
//	     ▼                     │                     ▼
//	┌─────────┐            ┌───┴────┐            ┌─────────┐
//	│ Failed  │            │ Ended  │◀───────────│         │
//	└─────────┘            └────────┘
//
// Any state moves to Closed on Close; Closed is terminal.
// Play from Ended rewinds to the start first.
type State int

const (
	Loading State = iota
	Paused
	Playing
	Ended
	Failed
	Closed
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Ended:
		return "Ended"
	case Failed:
		return "Failed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// CanPlay returns true if Play would start output from this state.
func (s State) CanPlay() bool {
	return s == Paused || s == Ended
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// IsTerminal returns true if the handle can no longer produce output.
func (s State) IsTerminal() bool {
	return s == Failed || s == Closed
}
