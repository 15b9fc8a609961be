//nolint:goconst // test cases intentionally repeat strings for readability
package app

import (
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/theater/internal/config"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/state"
	"github.com/llehouerou/theater/internal/ui/helpbindings"
	"github.com/llehouerou/theater/internal/ui/layout"
)

type harness struct {
	opener *player.MockOpener
	screen *Screen
	ctrl   *playback.Controller
	closed int
}

// newModel builds a started controller over mocks and a sized model
// subscribed before the start events.
func newModel(t *testing.T, src playback.Source) (*harness, Model) {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	h := &harness{opener: player.NewMockOpener(), screen: NewScreen()}
	prefs := state.NewPreferences(state.NewMock(), log)
	engine := playback.NewEngine(h.opener, prefs,
		playback.WithEngineLogger(log),
		playback.WithCapabilities(h.screen),
	)
	h.ctrl = playback.New(engine, prefs, src,
		playback.WithLogger(log),
		playback.WithCountdownDelay(3),
		playback.WithOnClose(func() { h.closed++ }),
	)

	m := New(h.ctrl, h.screen, (&config.Config{}).GetPlaybackConfig())
	h.ctrl.Start()
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return h, m
}

func makeTracks(ids ...string) []playlist.Track {
	tracks := make([]playlist.Track, len(ids))
	for i, id := range ids {
		tracks[i] = playlist.Track{
			ID:        id,
			Name:      "Track " + id,
			IsAudio:   true,
			StreamURL: "https://media.test/stream/" + id + ".mp3",
		}
	}
	return tracks
}

func playlistSource() playback.Source {
	return playback.Source{Name: "Evening", Tracks: makeTracks("a", "b", "c")}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuit_RequestsCloseAndQuits(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	_, cmd := press(t, m, runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, h.closed)
	assert.NotNil(t, h.ctrl.CurrentTrack(), "close must not unbind")
}

func TestHelp_OpenAndClose(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	m, _ = press(t, m, runes("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "Keys")

	// q closes the popup instead of quitting
	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, helpbindings.CloseMsg{}, msg)
	assert.Equal(t, 0, h.closed)

	m = update(t, m, msg)
	assert.False(t, m.showHelp)
}

func TestKeys_PlaybackCommands(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h, m := newModel(t, playlistSource())
		defer h.ctrl.Stop()
		media := h.opener.Last()
		media.Ready(100 * time.Second)
		synctest.Wait()

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		assert.True(t, m.status.Playing)
		assert.Equal(t, player.Playing, media.State())

		m, _ = press(t, m, runes("5"))
		assert.Equal(t, 50*time.Second, m.status.Position)
		m, _ = press(t, m, runes("l"))
		assert.Equal(t, 60*time.Second, m.status.Position)
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		assert.Equal(t, 50*time.Second, m.status.Position)
		m, _ = press(t, m, runes("0"))
		assert.Equal(t, time.Duration(0), m.status.Position)

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
		assert.InDelta(t, 0.95, m.status.Volume, 1e-9)
		m, _ = press(t, m, runes("m"))
		assert.True(t, m.status.Muted)

		m, _ = press(t, m, runes(">"))
		assert.InDelta(t, 1.25, m.status.Rate, 1e-9)
		m, _ = press(t, m, runes(","))
		assert.InDelta(t, 1.0, m.status.Rate, 1e-9)

		m, _ = press(t, m, runes("k"))
		assert.False(t, m.status.Playing)
	})
}

func TestKeys_FullscreenUsesAltScreen(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	m, cmd := press(t, m, runes("f"))
	assert.True(t, m.status.Fullscreen)
	assert.True(t, h.screen.AltScreen())
	assert.NotNil(t, cmd)
	assert.Equal(t, 30, lipgloss.Height(m.View()), "fullscreen fills the terminal")

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.status.Fullscreen)
	assert.False(t, h.screen.AltScreen())
	assert.NotNil(t, cmd)

	m, cmd = press(t, m, runes("P"))
	assert.False(t, m.status.PictureInPicture, "terminal has no picture-in-picture")
	assert.Nil(t, cmd)
}

func TestKeys_PlaylistNavigation(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, 1, h.ctrl.CurrentIndex())
	assert.Equal(t, "Track b", m.status.Track.Name)

	m, _ = press(t, m, runes("p"))
	assert.Equal(t, 0, h.ctrl.CurrentIndex())

	m, _ = press(t, m, runes("R"))
	assert.Equal(t, playlist.RepeatAll, m.mode.RepeatMode)
	m, _ = press(t, m, runes("S"))
	assert.True(t, m.mode.Shuffle)
	m, _ = press(t, m, runes("a"))
	assert.False(t, m.mode.Autoplay)
}

func TestKeys_SidebarEditing(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 1, m.sidebar.Cursor())

	// Move b below c; the playing track a keeps playing.
	m, _ = press(t, m, runes("J"))
	assert.Equal(t, []string{"a", "c", "b"}, trackIDs(h.ctrl.Tracks()))
	assert.Equal(t, 2, m.sidebar.Cursor())
	assert.Equal(t, 0, h.ctrl.CurrentIndex())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, 2, h.ctrl.CurrentIndex())
	assert.Equal(t, "b", h.ctrl.CurrentTrack().ID)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m, _ = press(t, m, runes("x"))
	assert.Equal(t, []string{"a", "b"}, trackIDs(h.ctrl.Tracks()))
	assert.Equal(t, "b", m.status.Track.ID)
}

func TestKeys_SidebarHidden(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.False(t, h.ctrl.SidebarVisible())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m, _ = press(t, m, runes("x"))
	assert.Len(t, h.ctrl.Tracks(), 3, "sidebar keys are ignored while hidden")
	assert.Equal(t, 0, m.sidebar.Cursor())
}

func TestSingleMode(t *testing.T) {
	h, m := newModel(t, playback.SingleSource(makeTracks("solo")[0]))
	defer h.ctrl.Stop()

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, "solo", m.status.Track.ID)
	assert.Equal(t, 0, m.layout().SidebarWidth)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Track solo")
	assert.NotContains(t, view, "1/1")
}

func TestCountdownBanner(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h, m := newModel(t, playlistSource())
		defer h.ctrl.Stop()
		h.opener.Last().Ready(time.Minute)
		synctest.Wait()

		h.opener.Last().Finish()
		synctest.Wait()
		m = update(t, m, EndedMsg{})

		require.Equal(t, 3, m.countdown)
		view := ansi.Strip(m.View())
		assert.Contains(t, view, "Next up: Track b in 3")
		assert.Contains(t, view, "c cancel")

		m, _ = press(t, m, runes("c"))
		assert.Equal(t, -1, m.countdown)
		assert.NotContains(t, ansi.Strip(m.View()), "Next up")
	})
}

func TestView_InlineLayout(t *testing.T) {
	h, m := newModel(t, playlistSource())
	defer h.ctrl.Stop()

	view := m.View()
	assert.Equal(t, layout.InlineHeight, lipgloss.Height(view))

	plain := ansi.Strip(view)
	assert.Contains(t, plain, "theater")
	assert.Contains(t, plain, "Evening")
	assert.Contains(t, plain, "Track c", "sidebar lists the queue")
	assert.Contains(t, plain, "? help")
}

func TestView_ZeroSize(t *testing.T) {
	h := &harness{opener: player.NewMockOpener()}
	prefs := state.NewPreferences(nil, nil)
	h.ctrl = playback.New(playback.NewEngine(h.opener, prefs), prefs, playlistSource())
	defer h.ctrl.Stop()

	m := New(h.ctrl, NewScreen(), config.PlaybackConfig{})
	assert.Empty(t, m.View())
}

func TestWatchEvents(t *testing.T) {
	h, m := newModel(t, playlistSource())

	next, cmd := m.Update(StatusMsg(h.ctrl.Status()))
	m, ok := next.(Model)
	require.True(t, ok)
	assert.NotNil(t, cmd, "handlers re-arm the watcher")

	h.ctrl.Stop()
	watch := WatchEvents(m.sub)
	var msg tea.Msg
	for range 32 {
		msg = watch()
		if _, ok := msg.(ClosedMsg); ok {
			break
		}
	}
	require.Equal(t, ClosedMsg{}, msg)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, WatchEvents(nil))
}

func trackIDs(tracks []playlist.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}

func TestScreen_Flush(t *testing.T) {
	s := NewScreen()
	assert.Nil(t, s.Flush())
	require.NoError(t, s.RequestFullscreen())
	assert.NotNil(t, s.Flush())
	assert.Nil(t, s.Flush(), "flush clears the pending switch")
	assert.ErrorIs(t, s.RequestPictureInPicture(), player.ErrUnsupported)
}
