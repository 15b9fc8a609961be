package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/theater/internal/icons"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/ui/render"
	"github.com/llehouerou/theater/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	nextUpSymbol  = "»"
)

// View renders the panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	inner := m.InnerWidth()

	content := m.renderHeader(inner) + "\n" +
		t.S().Subtle.Render(render.Separator(inner)) + "\n" +
		m.renderList(inner, m.Rows())

	return t.PanelStyle(m.IsFocused()).
		Width(inner).
		Render(content)
}

func (m Model) renderHeader(width int) string {
	name := m.name
	if name == "" {
		name = "Playlist"
	}
	count := fmt.Sprintf("%d/%d", m.current+1, len(m.tracks))
	if m.current < 0 {
		count = fmt.Sprintf("-/%d", len(m.tracks))
	}
	title := render.Truncate(name, max(width-lipgloss.Width(count)-1, 1))
	return render.Row(styles.T().Gradient(title), styles.T().S().Muted.Render(count), width)
}

func (m Model) renderList(width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := make([]string, 0, height)
	for i := range height {
		idx := m.offset + i
		if idx >= len(m.tracks) {
			lines = append(lines, strings.Repeat(" ", width))
			continue
		}
		lines = append(lines, m.renderLine(m.tracks[idx], idx, width))
	}
	return strings.Join(lines, "\n")
}

// renderLine renders "▶ 3. Name            03:41".
func (m Model) renderLine(t playlist.Track, idx, width int) string {
	prefix := "  "
	switch idx {
	case m.current:
		prefix = playingSymbol + " "
	case m.nextUp:
		prefix = nextUpSymbol + " "
	}
	number := fmt.Sprintf("%d. ", idx+1)

	right := t.Duration
	nameWidth := width - lipgloss.Width(prefix) - lipgloss.Width(number)
	if right != "" {
		nameWidth -= lipgloss.Width(right) + 1
	}
	line := prefix + number + render.Fit(icons.FormatMedia(t.DisplayName(), t.IsAudio), max(nameWidth, 1))
	if right != "" {
		line += " " + right
	}
	return m.lineStyle(idx).Render(render.Fit(line, width))
}

func (m Model) lineStyle(idx int) lipgloss.Style {
	st := styles.T().S()
	isCursor := idx == m.cursor && m.IsFocused()
	switch {
	case isCursor && idx == m.current:
		return st.Cursor.Inherit(st.Playing)
	case isCursor:
		return st.Cursor
	case idx == m.current:
		return st.Playing
	case idx == m.nextUp:
		return st.Title
	}
	return st.Base
}
