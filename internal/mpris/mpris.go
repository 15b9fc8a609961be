//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
)

// Adapter exposes a playback Controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(ctrl *playback.Controller) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("theater", &rootAdapter{ctrl: ctrl}, &playerAdapter{ctrl: ctrl}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	ctrl *playback.Controller
}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

// Quit asks the host to leave the player.
func (r *rootAdapter) Quit() error {
	r.ctrl.Close()
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Theater", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional loop/shuffle interfaces.
type playerAdapter struct {
	ctrl *playback.Controller
}

func (p *playerAdapter) engine() *playback.Engine { return p.ctrl.Engine() }

func (p *playerAdapter) Next() error {
	p.ctrl.NextTrack()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.ctrl.PrevTrack()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.engine().Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.engine().TogglePlay()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.engine().Pause()
	p.engine().SeekToStart()
	return nil
}

func (p *playerAdapter) Play() error {
	p.engine().Play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.engine().SkipBy(time.Duration(offset) * time.Microsecond)
	return nil
}

// SetPosition is ignored when trackID is not the current track.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	t := p.ctrl.CurrentTrack()
	if t == nil || trackID != formatTrackID(t.ID) {
		return nil
	}
	p.engine().SeekTo(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	st := p.ctrl.Status()
	switch {
	case st.Track == nil:
		return types.PlaybackStatusStopped, nil
	case st.Playing:
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.ctrl.Status().Rate, nil
}

// SetRate accepts only rates from the player's rate set.
func (p *playerAdapter) SetRate(rate float64) error {
	p.engine().SetRate(rate)
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	t := p.ctrl.CurrentTrack()
	if t == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(t.ID)),
		Length:      types.Microseconds(p.ctrl.Status().Duration.Microseconds()),
		Title:       t.DisplayName(),
		Album:       p.ctrl.PlaylistName(),
		TrackNumber: p.ctrl.CurrentIndex() + 1,
		ArtUrl:      ArtworkURL(*t),
	}
	if t.Author != "" {
		meta.Artist = []string{t.Author}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	st := p.ctrl.Status()
	if st.Muted {
		return 0, nil
	}
	return st.Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.engine().SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.Status().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return player.Rates[0], nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return player.Rates[len(player.Rates)-1], nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.ctrl.HasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctrl.HasPrev(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctrl.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctrl.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.ctrl.Status().Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.ctrl.RepeatMode() {
	case playlist.RepeatOne:
		return types.LoopStatusTrack, nil
	case playlist.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playlist.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.ctrl.SetRepeatMode(playlist.RepeatOff)
	case types.LoopStatusTrack:
		p.ctrl.SetRepeatMode(playlist.RepeatOne)
	case types.LoopStatusPlaylist:
		p.ctrl.SetRepeatMode(playlist.RepeatAll)
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.ctrl.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.ctrl.SetShuffle(shuffle)
	return nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
