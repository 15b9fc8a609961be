package playlist

// RepeatMode defines what happens at the end of a track or of the queue.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // stop at the end of the queue
	RepeatAll                   // wrap around the queue
	RepeatOne                   // loop the current track
)

// String returns the persisted name of the mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "none"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the none → all → one cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// ParseRepeatMode parses a persisted repeat mode name.
// The second result is false for unknown names.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch s {
	case "none":
		return RepeatOff, true
	case "all":
		return RepeatAll, true
	case "one":
		return RepeatOne, true
	default:
		return RepeatOff, false
	}
}
