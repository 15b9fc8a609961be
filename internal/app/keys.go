package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/theater/internal/keymap"
	"github.com/llehouerou/theater/internal/playlist"
)

// handleKey dispatches a key press. Unbound keys are ignored.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := m.keys.Resolve(key)
	e := m.ctrl.Engine()

	switch action {
	case keymap.ActionQuit:
		m.ctrl.Close()
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		m.resize()
		return m, nil
	case keymap.ActionToggleSidebar:
		m.ctrl.ToggleSidebar()

	case keymap.ActionPlayPause:
		e.TogglePlay()
	case keymap.ActionSeekBack:
		e.SkipBy(-m.cfg.SkipDuration())
	case keymap.ActionSeekForward:
		e.SkipBy(m.cfg.SkipDuration())
	case keymap.ActionSeekStart:
		e.SeekToStart()
	case keymap.ActionSeekEnd:
		e.SeekToEnd()
	case keymap.ActionSeekPercent:
		if p, ok := keymap.SeekPercent(key); ok {
			e.SeekToFraction(float64(p) / 100)
		}
	case keymap.ActionVolumeUp:
		e.AdjustVolume(m.cfg.VolumeStep)
	case keymap.ActionVolumeDown:
		e.AdjustVolume(-m.cfg.VolumeStep)
	case keymap.ActionToggleMute:
		e.ToggleMute()
	case keymap.ActionRateDown:
		e.CycleRate(-1)
	case keymap.ActionRateUp:
		e.CycleRate(1)
	case keymap.ActionFullscreen:
		e.ToggleFullscreen()
	case keymap.ActionExitFullscreen:
		e.ExitFullscreen()
	case keymap.ActionPiP:
		e.TogglePictureInPicture()

	case keymap.ActionNextTrack:
		m.ctrl.NextTrack()
	case keymap.ActionPrevTrack:
		m.ctrl.PrevTrack()
	case keymap.ActionCycleRepeat:
		m.ctrl.ToggleRepeat()
	case keymap.ActionToggleShuffle:
		m.ctrl.ToggleShuffle()
	case keymap.ActionToggleAutoplay:
		m.ctrl.ToggleAutoplay()
	case keymap.ActionCancelAutoNext:
		m.ctrl.CancelAutoNext()
	case keymap.ActionSkipAutoNext:
		m.ctrl.SkipAutoNext()

	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionSelect,
		keymap.ActionMoveItemUp, keymap.ActionMoveItemDown, keymap.ActionDelete:
		if !m.sidebarVisible() {
			return m, nil
		}
		m.handleSidebar(action)

	default:
		return m, nil
	}

	m.refresh()
	return m, tea.Batch(m.screen.Flush(), m.syncPoster())
}

func (m *Model) handleSidebar(action keymap.Action) {
	cursor := m.sidebar.Cursor()
	if cursor == playlist.NoIndex {
		return
	}
	switch action {
	case keymap.ActionMoveUp:
		m.sidebar.MoveCursor(-1)
	case keymap.ActionMoveDown:
		m.sidebar.MoveCursor(1)
	case keymap.ActionSelect:
		m.ctrl.PlayTrackAt(cursor)
	case keymap.ActionMoveItemUp:
		if m.ctrl.MoveTrackBy(cursor, -1) {
			m.refresh()
			m.sidebar.SetCursor(cursor - 1)
		}
	case keymap.ActionMoveItemDown:
		if m.ctrl.MoveTrackBy(cursor, 1) {
			m.refresh()
			m.sidebar.SetCursor(cursor + 1)
		}
	case keymap.ActionDelete:
		m.ctrl.RemoveTrack(cursor)
	}
}
