// Package sidebar renders the playlist panel: every track in order, the
// playing track marked, and a cursor for picking, moving, or removing tracks.
package sidebar

import (
	"github.com/samber/lo"

	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/ui"
)

// Model is the sidebar state. It renders a snapshot pushed by the host and
// never mutates the playlist itself.
type Model struct {
	ui.Base
	name    string
	tracks  []playlist.Track
	current int
	nextUp  int
	cursor  int
	offset  int
}

// New creates an empty sidebar.
func New() Model {
	return Model{current: playlist.NoIndex, nextUp: playlist.NoIndex}
}

// SetPlaylist replaces the snapshot. The cursor follows the playing track
// when it changes.
func (m *Model) SetPlaylist(name string, tracks []playlist.Track, current int) {
	changed := current != m.current
	m.name = name
	m.tracks = tracks
	m.current = current
	if changed {
		m.SyncCursor()
		return
	}
	m.clampCursor()
}

// SetNextUp marks the track the countdown will load, or clears the mark
// with playlist.NoIndex.
func (m *Model) SetNextUp(index int) {
	m.nextUp = index
}

// SetSize sets the panel dimensions and keeps the cursor in view.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.ensureCursorVisible()
}

// Cursor returns the index under the cursor, or playlist.NoIndex when empty.
func (m Model) Cursor() int {
	if len(m.tracks) == 0 {
		return playlist.NoIndex
	}
	return m.cursor
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (m *Model) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// SetCursor moves the cursor to index, clamped to the list.
func (m *Model) SetCursor(index int) {
	m.cursor = index
	m.clampCursor()
}

// SyncCursor moves the cursor to the playing track.
func (m *Model) SyncCursor() {
	if m.current >= 0 {
		m.cursor = m.current
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if len(m.tracks) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = lo.Clamp(m.cursor, 0, len(m.tracks)-1)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	h := m.Rows()
	if h <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (h-1)/2)
	if m.cursor-margin < m.offset {
		m.offset = m.cursor - margin
	}
	if m.cursor+margin >= m.offset+h {
		m.offset = m.cursor + margin - h + 1
	}
	m.offset = lo.Clamp(m.offset, 0, max(len(m.tracks)-h, 0))
}
