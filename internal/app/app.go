package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/theater/internal/config"
	"github.com/llehouerou/theater/internal/keymap"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/ui/helpbindings"
	"github.com/llehouerou/theater/internal/ui/poster"
	"github.com/llehouerou/theater/internal/ui/sidebar"
)

// Model is the root bubbletea model. It mirrors the controller state and
// turns key presses into controller and engine commands.
type Model struct {
	ctrl   *playback.Controller
	sub    *playback.Subscription
	keys   *keymap.Keymap
	screen *Screen
	cfg    config.PlaybackConfig

	sidebar  sidebar.Model
	help     helpbindings.Model
	showHelp bool

	poster        *poster.Renderer
	posterPending string
	posterUpload  string

	status    playback.Status
	mode      playback.ModeChange
	countdown int
	nextUp    *playlist.Track

	width, height int
}

// New creates the model and subscribes to ctrl. screen must be the
// capabilities the engine was built with.
func New(ctrl *playback.Controller, screen *Screen, cfg config.PlaybackConfig) Model {
	keys := keymap.Default()
	m := Model{
		ctrl:      ctrl,
		sub:       ctrl.Subscribe(),
		keys:      keys,
		screen:    screen,
		cfg:       cfg,
		sidebar:   sidebar.New(),
		help:      helpbindings.New(keys),
		countdown: -1,
	}
	m.refresh()
	return m
}

// Init starts listening for controller events.
func (m Model) Init() tea.Cmd {
	return WatchEvents(m.sub)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case helpbindings.CloseMsg:
		m.showHelp = false
		return m, nil

	case StatusMsg:
		m.status = playback.Status(msg)
		return m, tea.Batch(WatchEvents(m.sub), m.syncPoster())

	case CountdownMsg:
		m.countdown = msg.Remaining
		m.nextUp = msg.NextUp
		m.syncSidebar()
		return m, WatchEvents(m.sub)

	case TrackMsg, QueueMsg, ModeMsg, EndedMsg, ErrorMsg:
		m.refresh()
		return m, tea.Batch(WatchEvents(m.sub), m.syncPoster())

	case PosterMsg:
		m.handlePoster(msg)
		return m, nil

	case ClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

// refresh pulls the whole controller state. Subscription channels drop
// events when full, so handlers resynchronize instead of applying deltas.
func (m *Model) refresh() {
	m.status = m.ctrl.Status()
	m.mode = playback.ModeChange{
		RepeatMode: m.ctrl.RepeatMode(),
		Shuffle:    m.ctrl.Shuffle(),
		Autoplay:   m.ctrl.Autoplay(),
		Sidebar:    m.ctrl.SidebarVisible(),
	}
	m.countdown = m.ctrl.Countdown()
	m.nextUp = nil
	if m.countdown >= 0 {
		m.nextUp = m.ctrl.NextUp()
	}
	m.syncSidebar()
	m.resize()
}

func (m *Model) syncSidebar() {
	m.sidebar.SetPlaylist(m.ctrl.PlaylistName(), m.ctrl.Tracks(), m.ctrl.CurrentIndex())
	next := playlist.NoIndex
	if m.countdown >= 0 {
		next = m.ctrl.NextIndex()
	}
	m.sidebar.SetNextUp(next)
	m.sidebar.SetFocused(m.sidebarVisible())
}

// sidebarVisible reports whether the playlist panel is drawn.
func (m Model) sidebarVisible() bool {
	return m.ctrl.Mode() == playback.ModePlaylist && m.mode.Sidebar
}
