//go:build linux

package mpris

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
)

func newAdapter(t *testing.T, tracks ...playlist.Track) (*playerAdapter, *player.MockOpener, *state.Mock) {
	t.Helper()
	opener := player.NewMockOpener()
	store := state.NewMock()
	prefs := state.NewPreferences(store, nil)
	engine := playback.NewEngine(opener, prefs, playback.WithCapabilities(&player.MockCapabilities{}))
	ctrl := playback.New(engine, prefs, playback.Source{Name: "Evening", Tracks: tracks})
	ctrl.Start()
	return &playerAdapter{ctrl: ctrl}, opener, store
}

func tracks() []playlist.Track {
	return []playlist.Track{
		{ID: "a", Name: "Opening", Author: "Host", IsAudio: true, StreamURL: "https://media.test/a.mp3"},
		{ID: "b", Name: "Closing", IsAudio: true, StreamURL: "https://media.test/b.mp3"},
	}
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, opener, _ := newAdapter(t, tracks()...)
		defer p.ctrl.Stop()

		opener.Last().Ready(90 * time.Second)
		synctest.Wait()

		meta, err := p.Metadata()
		require.NoError(t, err)
		assert.Equal(t, "Opening", meta.Title)
		assert.Equal(t, []string{"Host"}, meta.Artist)
		assert.Equal(t, "Evening", meta.Album)
		assert.Equal(t, 1, meta.TrackNumber)
		assert.Equal(t, types.Microseconds(90*time.Second/time.Microsecond), meta.Length)
		assert.Equal(t, formatTrackID("a"), string(meta.TrackId))

		canSeek, _ := p.CanSeek()
		assert.True(t, canSeek)
	})
}

func TestPlayerAdapter_EmptyMetadata(t *testing.T) {
	p, _, _ := newAdapter(t)
	defer p.ctrl.Stop()

	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Title)

	status, _ := p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusStopped, status)
	canPlay, _ := p.CanPlay()
	assert.False(t, canPlay)
}

func TestPlayerAdapter_PlayPauseAndStatus(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, opener, _ := newAdapter(t, tracks()...)
		defer p.ctrl.Stop()

		opener.Last().Ready(time.Minute)
		synctest.Wait()

		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)

		require.NoError(t, p.PlayPause())
		status, _ = p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPlaying, status)

		require.NoError(t, p.Pause())
		status, _ = p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)
	})
}

func TestPlayerAdapter_Navigation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, _, _ := newAdapter(t, tracks()...)
		defer p.ctrl.Stop()

		canNext, _ := p.CanGoNext()
		canPrev, _ := p.CanGoPrevious()
		assert.True(t, canNext)
		assert.False(t, canPrev)

		require.NoError(t, p.Next())
		assert.Equal(t, 1, p.ctrl.CurrentIndex())

		require.NoError(t, p.Previous())
		assert.Equal(t, 0, p.ctrl.CurrentIndex())
	})
}

func TestPlayerAdapter_SetPositionChecksTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, opener, _ := newAdapter(t, tracks()...)
		defer p.ctrl.Stop()

		m := opener.Last()
		m.Ready(time.Minute)
		synctest.Wait()

		require.NoError(t, p.SetPosition(formatTrackID("b"), types.Microseconds(10*time.Second/time.Microsecond)))
		assert.Empty(t, m.SeekCalls())

		require.NoError(t, p.SetPosition(formatTrackID("a"), types.Microseconds(10*time.Second/time.Microsecond)))
		assert.Equal(t, []time.Duration{10 * time.Second}, m.SeekCalls())

		require.NoError(t, p.Seek(types.Microseconds(5*time.Second/time.Microsecond)))
		pos, _ := p.Position()
		assert.Equal(t, (15 * time.Second).Microseconds(), pos)
	})
}

func TestPlayerAdapter_VolumeAndRate(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, opener, store := newAdapter(t, tracks()...)
		defer p.ctrl.Stop()

		opener.Last().Ready(time.Minute)
		synctest.Wait()

		require.NoError(t, p.SetVolume(0.5))
		v, _ := p.Volume()
		assert.InDelta(t, 0.5, v, 1e-9)
		stored, _ := store.Value(state.KeyVolume)
		assert.Equal(t, "0.5", stored)

		require.NoError(t, p.SetVolume(0))
		v, _ = p.Volume()
		assert.Zero(t, v)

		require.NoError(t, p.SetRate(1.5))
		r, _ := p.Rate()
		assert.InDelta(t, 1.5, r, 1e-9)

		minRate, _ := p.MinimumRate()
		maxRate, _ := p.MaximumRate()
		assert.InDelta(t, 0.25, minRate, 1e-9)
		assert.InDelta(t, 3.0, maxRate, 1e-9)
	})
}

func TestPlayerAdapter_LoopAndShuffle(t *testing.T) {
	p, _, store := newAdapter(t, tracks()...)
	defer p.ctrl.Stop()

	tests := []struct {
		loop types.LoopStatus
		mode playlist.RepeatMode
	}{
		{types.LoopStatusTrack, playlist.RepeatOne},
		{types.LoopStatusPlaylist, playlist.RepeatAll},
		{types.LoopStatusNone, playlist.RepeatOff},
	}
	for _, tt := range tests {
		require.NoError(t, p.SetLoopStatus(tt.loop))
		assert.Equal(t, tt.mode, p.ctrl.RepeatMode())
		got, _ := p.LoopStatus()
		assert.Equal(t, tt.loop, got)
	}

	require.NoError(t, p.SetShuffle(true))
	on, _ := p.Shuffle()
	assert.True(t, on)
	stored, _ := store.Value(state.KeyShuffle)
	assert.Equal(t, "true", stored)
}

func TestRootAdapter_QuitRequestsClose(t *testing.T) {
	closed := 0
	prefs := state.NewPreferences(state.NewMock(), nil)
	engine := playback.NewEngine(player.NewMockOpener(), prefs)
	ctrl := playback.New(engine, prefs, playback.Source{Tracks: tracks()},
		playback.WithOnClose(func() { closed++ }))
	ctrl.Start()
	defer ctrl.Stop()

	r := &rootAdapter{ctrl: ctrl}
	can, _ := r.CanQuit()
	assert.True(t, can)
	require.NoError(t, r.Quit())
	assert.Equal(t, 1, closed)
	assert.NotNil(t, ctrl.CurrentTrack(), "quit must not unbind the track")
}
