package playback

import (
	"time"

	"github.com/llehouerou/theater/internal/playlist"
)

// Status is the observable state of the playback engine.
type Status struct {
	Playing          bool
	Position         time.Duration
	Duration         time.Duration // zero until known
	Buffered         float64       // 0.0 to 1.0
	Volume           float64       // 0.0 to 1.0
	Muted            bool
	Rate             float64
	Fullscreen       bool
	PictureInPicture bool
	Loading          bool
	HasError         bool
	ErrorReason      string

	Track     *playlist.Track // nil when unbound
	AudioOnly bool
}

// Progress returns Position as a fraction of Duration, or 0 if unknown.
func (s Status) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(1, float64(s.Position)/float64(s.Duration))
}

// TrackChange is emitted when the controller binds a different track, or
// reloads the same one.
//
// Emitted by:
//   - Start: the initial track
//   - NextTrack/PrevTrack/PlayTrackAt/SkipAutoNext: manual navigation
//   - countdown expiry and repeat-one reload on ended
//   - RemoveTrack: when the playing track was removed
//
// NOT emitted by MoveTrack: the playing track keeps playing even though its
// index changes. QueueChange carries the new index.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
	AutoStart     bool
}

// QueueChange is emitted when the queue contents or their order change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when repeat, shuffle, autoplay or sidebar
// preferences change.
type ModeChange struct {
	RepeatMode playlist.RepeatMode
	Shuffle    bool
	Autoplay   bool
	Sidebar    bool
}

// CountdownChange is emitted on every countdown step.
// Remaining is -1 when the countdown stops, whether cancelled or expired.
type CountdownChange struct {
	Remaining int
	NextUp    *playlist.Track
}

// EndedEvent is emitted when the bound track plays to its end.
type EndedEvent struct {
	Track *playlist.Track
	Index int
}

// ErrorEvent is emitted when the bound media fails.
type ErrorEvent struct {
	Track  *playlist.Track
	Reason string
}
