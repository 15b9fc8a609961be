// internal/playback/engine.go
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/theater/internal/errmsg"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
)

// Engine owns one live media handle at a time and tracks its observable
// status. Commands never return errors: media failures are captured into
// Status, and platform or playback rejections leave the status unchanged.
//
// Each Bind starts a new generation. Events from a handle of an older
// generation are discarded, so a stale ended can never advance the queue.
type Engine struct {
	mu     sync.Mutex
	opener player.Opener
	caps   player.Capabilities
	prefs  *state.Preferences
	log    logrus.FieldLogger

	media     player.Media
	stop      chan struct{} // closes the current watcher
	gen       uint64
	autoStart bool
	status    Status

	// lastVolume is the last non-zero volume, restored when unmuting from 0.
	lastVolume float64

	onEnded  func(gen uint64)
	onChange func(Status)
	onError  func(ErrorEvent)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the engine logger.
func WithEngineLogger(log logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithCapabilities sets the platform presentation capabilities.
func WithCapabilities(c player.Capabilities) EngineOption {
	return func(e *Engine) { e.caps = c }
}

// NewEngine creates an unbound engine. Volume, mute and rate start from prefs.
func NewEngine(opener player.Opener, prefs *state.Preferences, opts ...EngineOption) *Engine {
	e := &Engine{
		opener: opener,
		caps:   player.NoCapabilities{},
		prefs:  prefs,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("component", "engine")

	vol := prefs.Volume()
	e.status = Status{
		Volume: vol,
		Muted:  prefs.Muted() || vol == 0,
		Rate:   prefs.Rate(),
	}
	e.lastVolume = vol
	if vol == 0 {
		e.lastVolume = state.DefaultVolume
	}
	return e
}

// OnEnded registers fn to be called when the bound media ends. fn receives
// the generation of the binding that ended and runs without engine locks.
func (e *Engine) OnEnded(fn func(gen uint64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEnded = fn
}

// OnChange registers fn to receive status snapshots after every change.
// fn must not call back into the Engine's owner while holding its locks.
func (e *Engine) OnChange(fn func(Status)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// OnError registers fn to be called once per media failure, after the
// status carrying the error has been published.
func (e *Engine) OnError(fn func(ErrorEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = fn
}

// Generation returns the current binding generation.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// Status returns a snapshot of the engine status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Status {
	s := e.status
	if s.Track != nil {
		t := *s.Track
		s.Track = &t
	}
	return s
}

// Bind releases the current handle and opens track's stream. When autoStart
// is set, playback starts the first time the media reports it can play.
// Returns the new generation.
func (e *Engine) Bind(track playlist.Track, autoStart bool) uint64 {
	e.mu.Lock()
	e.releaseLocked()
	e.gen++
	gen := e.gen

	t := track
	e.autoStart = autoStart
	e.status.Track = &t
	e.status.AudioOnly = t.IsAudio
	e.status.Playing = false
	e.status.Position = 0
	e.status.Duration = 0
	e.status.Buffered = 0
	e.status.Loading = true
	e.status.HasError = false
	e.status.ErrorReason = ""
	if t.IsAudio && e.status.PictureInPicture {
		e.exitPictureInPictureLocked()
	}

	log := e.log.WithFields(logrus.Fields{"track": t.ID, "gen": gen})
	media, err := e.opener.Open(t.StreamURL)
	if err != nil {
		log.WithError(err).Warn(errmsg.FormatWith(errmsg.OpPlaybackOpen, t.DisplayName(), err))
		e.status.Loading = false
		e.status.HasError = true
		e.status.ErrorReason = player.ErrSourceNotSupported.Reason()
		report := e.errorReportLocked()
		e.unlockAndNotify()
		report()
		return gen
	}
	log.WithField("auto_start", autoStart).Debug("bind")

	media.SetVolume(e.status.Volume)
	media.SetMuted(e.status.Muted)
	media.SetRate(e.status.Rate)

	stop := make(chan struct{})
	e.media = media
	e.stop = stop
	go e.watch(gen, media, stop)

	e.unlockAndNotify()
	return gen
}

// Unbind releases the current handle and clears the bound track.
func (e *Engine) Unbind() {
	e.mu.Lock()
	if e.media == nil && e.status.Track == nil {
		e.mu.Unlock()
		return
	}
	e.releaseLocked()
	e.gen++
	e.autoStart = false
	e.status = Status{
		Volume:     e.status.Volume,
		Muted:      e.status.Muted,
		Rate:       e.status.Rate,
		Fullscreen: e.status.Fullscreen,
	}
	e.unlockAndNotify()
}

// releaseLocked stops the watcher without waiting for it: the watcher may be
// the goroutine that triggered this release.
func (e *Engine) releaseLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	if e.media != nil {
		e.media.Pause()
		if err := e.media.Close(); err != nil {
			e.log.WithError(err).Debug("close media")
		}
		e.media = nil
	}
}

// unlockAndNotify releases mu and publishes the status outside the lock.
func (e *Engine) unlockAndNotify() {
	s := e.snapshotLocked()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func (e *Engine) watch(gen uint64, media player.Media, stop <-chan struct{}) {
	events := media.Events()
	for {
		select {
		case <-stop:
			return
		case ev := <-events:
			e.handleEvent(gen, ev)
		}
	}
}

func (e *Engine) handleEvent(gen uint64, ev player.Event) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}

	ended := false
	switch ev.Kind {
	case player.EventLoadedMetadata:
		e.status.Duration = ev.Duration
	case player.EventCanPlay:
		e.status.Loading = false
		if e.autoStart {
			e.autoStart = false
			e.playLocked()
		}
	case player.EventWaiting:
		e.status.Loading = true
	case player.EventTimeUpdate:
		e.status.Position = ev.Position
		if ev.Duration > 0 {
			e.status.Duration = ev.Duration
		}
	case player.EventProgress:
		e.status.Buffered = ev.Buffered
	case player.EventPlay:
		e.status.Playing = true
	case player.EventPause:
		e.status.Playing = false
	case player.EventEnded:
		e.status.Playing = false
		e.status.Position = e.status.Duration
		ended = true
	case player.EventError:
		e.log.WithFields(logrus.Fields{
			"gen":    gen,
			"reason": ev.Err.Reason(),
			"detail": ev.Detail,
		}).Warn("media error")
		e.status.Playing = false
		e.status.Loading = false
		e.status.HasError = true
		e.status.ErrorReason = ev.Err.Reason()
	}

	var onEnded func(uint64)
	if ended {
		onEnded = e.onEnded
	}
	report := func() {}
	if ev.Kind == player.EventError {
		report = e.errorReportLocked()
	}
	e.unlockAndNotify()

	report()
	if onEnded != nil {
		onEnded(gen)
	}
}

// errorReportLocked captures the current error for delivery outside the lock.
func (e *Engine) errorReportLocked() func() {
	fn := e.onError
	if fn == nil {
		return func() {}
	}
	ev := ErrorEvent{Reason: e.status.ErrorReason}
	if e.status.Track != nil {
		t := *e.status.Track
		ev.Track = &t
	}
	return func() { fn(ev) }
}

// playLocked asks the media to start. A rejection leaves Playing unchanged.
func (e *Engine) playLocked() {
	if e.media == nil {
		return
	}
	if err := e.media.Play(); err != nil {
		e.log.WithError(err).Debug("play rejected")
		return
	}
	e.status.Playing = true
}

// Play starts or resumes playback.
func (e *Engine) Play() {
	e.mu.Lock()
	e.playLocked()
	e.unlockAndNotify()
}

// Pause pauses playback.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.media != nil {
		e.media.Pause()
		e.status.Playing = false
	}
	e.unlockAndNotify()
}

// TogglePlay pauses when playing and plays otherwise.
func (e *Engine) TogglePlay() {
	e.mu.Lock()
	if e.status.Playing {
		if e.media != nil {
			e.media.Pause()
			e.status.Playing = false
		}
	} else {
		e.playLocked()
	}
	e.unlockAndNotify()
}

// SeekTo moves to pos, clamped into [0, duration]. No-op while the duration
// is unknown.
func (e *Engine) SeekTo(pos time.Duration) {
	e.mu.Lock()
	e.seekLocked(pos)
	e.unlockAndNotify()
}

// SeekToFraction moves to f of the duration, f clamped into [0, 1].
func (e *Engine) SeekToFraction(f float64) {
	e.mu.Lock()
	f = max(0, min(1, f))
	e.seekLocked(time.Duration(f * float64(e.status.Duration)))
	e.unlockAndNotify()
}

// SkipBy moves relative to the current position.
func (e *Engine) SkipBy(delta time.Duration) {
	e.mu.Lock()
	e.seekLocked(e.status.Position + delta)
	e.unlockAndNotify()
}

// SeekToStart moves to the beginning.
func (e *Engine) SeekToStart() { e.SeekTo(0) }

// SeekToEnd moves to the end.
func (e *Engine) SeekToEnd() {
	e.mu.Lock()
	e.seekLocked(e.status.Duration)
	e.unlockAndNotify()
}

func (e *Engine) seekLocked(pos time.Duration) {
	if e.media == nil || e.status.Duration <= 0 {
		return
	}
	pos = max(0, min(e.status.Duration, pos))
	e.media.Seek(pos)
	e.status.Position = pos
}

// SetVolume sets the volume, clamped into [0, 1]. Volume 0 mutes and any
// other volume unmutes. Both are persisted.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	e.setVolumeLocked(v)
	e.unlockAndNotify()
}

// AdjustVolume changes the volume by delta.
func (e *Engine) AdjustVolume(delta float64) {
	e.mu.Lock()
	e.setVolumeLocked(e.status.Volume + delta)
	e.unlockAndNotify()
}

func (e *Engine) setVolumeLocked(v float64) {
	// Round to hundredths so repeated steps do not drift.
	v = math.Round(max(0, min(1, v))*100) / 100
	e.status.Volume = v
	e.status.Muted = v == 0
	if v > 0 {
		e.lastVolume = v
	}
	if e.media != nil {
		e.media.SetVolume(v)
		e.media.SetMuted(e.status.Muted)
	}
	e.prefs.SetVolume(v)
	e.prefs.SetMuted(e.status.Muted)
}

// ToggleMute flips mute. Unmuting at volume 0 restores the last non-zero
// volume.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	muted := !e.status.Muted
	if !muted && e.status.Volume == 0 {
		e.status.Volume = e.lastVolume
		e.prefs.SetVolume(e.status.Volume)
		if e.media != nil {
			e.media.SetVolume(e.status.Volume)
		}
	}
	e.status.Muted = muted
	if e.media != nil {
		e.media.SetMuted(muted)
	}
	e.prefs.SetMuted(muted)
	e.unlockAndNotify()
}

// SetRate sets the playback rate. Rates outside player.Rates are ignored.
func (e *Engine) SetRate(r float64) {
	e.mu.Lock()
	if player.RateIndex(r) >= 0 {
		e.setRateLocked(r)
	}
	e.unlockAndNotify()
}

// CycleRate steps dir positions through player.Rates, clamped at the ends.
func (e *Engine) CycleRate(dir int) {
	e.mu.Lock()
	e.setRateLocked(player.StepRate(e.status.Rate, dir))
	e.unlockAndNotify()
}

func (e *Engine) setRateLocked(r float64) {
	e.status.Rate = r
	if e.media != nil {
		e.media.SetRate(r)
	}
	e.prefs.SetRate(r)
}

// ToggleFullscreen asks the platform to enter or leave fullscreen.
func (e *Engine) ToggleFullscreen() {
	e.mu.Lock()
	if e.status.Fullscreen {
		e.exitFullscreenLocked()
	} else if err := e.caps.RequestFullscreen(); err != nil {
		e.log.WithError(err).Debug("fullscreen denied")
	} else {
		e.status.Fullscreen = true
	}
	e.unlockAndNotify()
}

// ExitFullscreen leaves fullscreen if active.
func (e *Engine) ExitFullscreen() {
	e.mu.Lock()
	if e.status.Fullscreen {
		e.exitFullscreenLocked()
	}
	e.unlockAndNotify()
}

func (e *Engine) exitFullscreenLocked() {
	if err := e.caps.ExitFullscreen(); err != nil {
		e.log.WithError(err).Debug("exit fullscreen denied")
		return
	}
	e.status.Fullscreen = false
}

// TogglePictureInPicture toggles picture-in-picture. No-op for audio-only
// tracks and on platforms without support.
func (e *Engine) TogglePictureInPicture() {
	e.mu.Lock()
	switch {
	case e.status.Track == nil || e.status.AudioOnly:
	case !e.caps.PictureInPictureSupported():
	case e.status.PictureInPicture:
		e.exitPictureInPictureLocked()
	default:
		if err := e.caps.RequestPictureInPicture(); err != nil {
			e.log.WithError(err).Debug("picture-in-picture denied")
		} else {
			e.status.PictureInPicture = true
		}
	}
	e.unlockAndNotify()
}

func (e *Engine) exitPictureInPictureLocked() {
	if err := e.caps.ExitPictureInPicture(); err != nil {
		e.log.WithError(err).Debug("exit picture-in-picture denied")
		return
	}
	e.status.PictureInPicture = false
}
