// internal/player/interface.go
package player

import (
	"errors"
	"time"
)

var (
	// ErrUnsupported is returned by capabilities the platform does not offer.
	ErrUnsupported = errors.New("not supported")
	// ErrNotReady is returned by Play before the media can play.
	ErrNotReady = errors.New("media not ready")
	// ErrClosed is returned by operations on a closed handle.
	ErrClosed = errors.New("media closed")
)

// Media is one live media-rendering handle bound to a single source.
//
// Loading happens in the background: Open returns immediately and progress
// is reported on Events. Implementations never close the Events channel and
// never block on it.
type Media interface {
	// Play starts or resumes output. A rejected attempt returns an error
	// and leaves output unchanged.
	Play() error
	Pause()
	Seek(pos time.Duration)
	SetVolume(level float64) // 0.0 to 1.0
	SetMuted(muted bool)
	SetRate(rate float64)
	Events() <-chan Event
	// Close stops output and releases the source. Safe to call twice.
	Close() error
}

// Opener creates media handles for stream URLs.
type Opener interface {
	Open(url string) (Media, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) (Media, error)

// Open implements Opener.
func (f OpenerFunc) Open(url string) (Media, error) { return f(url) }

// Capabilities are platform-mediated presentation features.
// Every request may be denied; callers treat errors as "nothing changed".
type Capabilities interface {
	RequestFullscreen() error
	ExitFullscreen() error
	PictureInPictureSupported() bool
	RequestPictureInPicture() error
	ExitPictureInPicture() error
}

// NoCapabilities denies every presentation request.
type NoCapabilities struct{}

func (NoCapabilities) RequestFullscreen() error        { return ErrUnsupported }
func (NoCapabilities) ExitFullscreen() error           { return ErrUnsupported }
func (NoCapabilities) PictureInPictureSupported() bool { return false }
func (NoCapabilities) RequestPictureInPicture() error  { return ErrUnsupported }
func (NoCapabilities) ExitPictureInPicture() error     { return ErrUnsupported }

// Verify NoCapabilities implements Capabilities at compile time.
var _ Capabilities = NoCapabilities{}
