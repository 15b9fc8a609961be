package player

import "time"

// EventKind identifies a media event.
type EventKind int

const (
	EventLoadedMetadata EventKind = iota // Duration is known
	EventCanPlay                         // enough data to start output
	EventWaiting                         // output stalled on data
	EventTimeUpdate                      // Position changed
	EventProgress                        // Buffered changed
	EventPlay
	EventPause
	EventEnded
	EventError // Err is set
)

// String returns the event name for logging.
func (k EventKind) String() string {
	switch k {
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventCanPlay:
		return "canplay"
	case EventWaiting:
		return "waiting"
	case EventTimeUpdate:
		return "timeupdate"
	case EventProgress:
		return "progress"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification from a media handle.
type Event struct {
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
	Buffered float64 // 0.0 to 1.0
	Err      MediaError
	Detail   string // underlying cause, for logs
}

// MediaError classifies media resource failures.
type MediaError int

const (
	ErrUnknownMedia MediaError = iota
	ErrAborted
	ErrNetwork
	ErrDecode
	ErrSourceNotSupported
)

// Reason returns the user-facing description of the failure.
func (e MediaError) Reason() string {
	switch e {
	case ErrAborted:
		return "Playback aborted"
	case ErrNetwork:
		return "Network error, check your connection"
	case ErrDecode:
		return "Decoding error, unsupported encoding"
	case ErrSourceNotSupported:
		return "Format not supported"
	default:
		return "Unknown playback error"
	}
}
