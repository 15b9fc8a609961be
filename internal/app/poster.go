package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/theater/internal/ui/headerbar"
	"github.com/llehouerou/theater/internal/ui/layout"
	"github.com/llehouerou/theater/internal/ui/poster"
)

const (
	posterMaxRows  = 12
	posterMinRows  = 4
	posterFetchMax = 10 * time.Second
)

// PosterMsg carries a fetched thumbnail.
type PosterMsg struct {
	Source string
	Data   []byte
	Err    error
}

// WithPoster enables thumbnails for audio tracks in fullscreen.
func (m Model) WithPoster(r *poster.Renderer) Model {
	m.poster = r
	m.resize()
	return m
}

// fetchPoster loads a thumbnail in the background.
func fetchPoster(src string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), posterFetchMax)
		defer cancel()
		data, err := poster.Fetch(ctx, nil, src)
		return PosterMsg{Source: src, Data: data, Err: err}
	}
}

// posterWanted returns the thumbnail the stage should show, or "".
func (m Model) posterWanted() string {
	if m.poster == nil || !m.screen.AltScreen() || !m.status.AudioOnly || m.status.Track == nil {
		return ""
	}
	return m.status.Track.ThumbnailURL
}

// syncPoster starts a fetch when the wanted thumbnail is not uploaded.
func (m *Model) syncPoster() tea.Cmd {
	src := m.posterWanted()
	if src == "" || src == m.poster.Source() || src == m.posterPending {
		return nil
	}
	m.posterPending = src
	return fetchPoster(src)
}

func (m *Model) handlePoster(msg PosterMsg) {
	if msg.Source == m.posterPending {
		m.posterPending = ""
	}
	if m.poster == nil || msg.Source != m.posterWanted() {
		return
	}
	// A failed fetch is recorded like an undecodable image so it is not
	// retried for the same track.
	upload, _ := m.poster.Prepare(msg.Source, msg.Data)
	m.posterUpload = upload
}

// resizePoster fits the thumbnail above the stage text, square in pixels
// on cells twice as tall as wide.
func (m Model) resizePoster(l layout.Layout) {
	if m.poster == nil {
		return
	}
	rows := min(l.BodyHeight-6, posterMaxRows)
	cols := rows * 2
	if rows < posterMinRows || cols > l.StageWidth-4 {
		rows, cols = 0, 0
	}
	if c, r := m.poster.Size(); c != cols || r != rows {
		m.poster.SetSize(cols, rows)
	}
}

// posterShown reports whether the stage reserves room for the thumbnail.
func (m Model) posterShown() bool {
	src := m.posterWanted()
	if src == "" || src != m.poster.Source() || !m.poster.HasImage() {
		return false
	}
	cols, _ := m.poster.Size()
	return cols > 0
}

// posterBox returns the top and left offsets of the thumbnail in a stage
// of the given size holding text lines below it.
func (m Model) posterBox(width, height, text int) (top, left int) {
	cols, rows := m.poster.Size()
	return max((height-rows-1-text)/2, 0), max((width-cols)/2, 0)
}

// renderPosterStage stacks the placeholder, a gap and the text lines.
func (m Model) renderPosterStage(width, height int, lines []string) string {
	cols, _ := m.poster.Size()
	top, left := m.posterBox(width, height, len(lines))
	pad := strings.Repeat(" ", left)

	out := make([]string, 0, height)
	for range top {
		out = append(out, "")
	}
	for _, row := range strings.Split(m.poster.Placeholder(), "\n") {
		out = append(out, pad+row+strings.Repeat(" ", max(width-left-cols, 0)))
	}
	out = append(out, "")
	for _, line := range lines {
		out = append(out, lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, strings.Join(out, "\n"))
}

// posterSequences returns the escape sequences framing the view: the
// pending upload and the placement, or a hide when the thumbnail is
// covered or not wanted.
func (m Model) posterSequences(l layout.Layout) (prefix, suffix string) {
	if m.poster == nil || !m.poster.HasImage() {
		return "", ""
	}
	if !m.posterShown() || m.showHelp || m.countdown >= 0 || l.BodyHeight <= 0 {
		return "", m.poster.Hide()
	}
	top, left := m.posterBox(l.StageWidth, l.BodyHeight, len(m.stageLines(l.StageWidth)))
	row := headerbar.Height + top + 1
	return m.posterUpload, m.poster.Placement(row, left+1)
}
