package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/theater/internal/icons"
	"github.com/llehouerou/theater/internal/keymap"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/ui/headerbar"
	"github.com/llehouerou/theater/internal/ui/layout"
	"github.com/llehouerou/theater/internal/ui/overlay"
	"github.com/llehouerou/theater/internal/ui/playerbar"
	"github.com/llehouerou/theater/internal/ui/render"
	"github.com/llehouerou/theater/internal/ui/styles"
)

const helpWidth = 64

// View renders the player.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	l := m.layout()

	sections := []string{m.renderHeader()}
	if l.BodyHeight > 0 {
		sections = append(sections, m.renderBody(l))
	}
	sections = append(sections, playerbar.Render(m.barState(), m.width))
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showHelp {
		view = overlay.Center(view, m.help.View(), m.width, l.Height)
	}
	prefix, suffix := m.posterSequences(l)
	return prefix + view + suffix
}

func (m Model) renderHeader() string {
	title := ""
	hints := []headerbar.Hint{{Key: m.keys.Hint(keymap.ActionHelp), Name: "help"}}
	if m.ctrl.Mode() == playback.ModePlaylist {
		title = m.ctrl.PlaylistName()
		hints = append(hints, headerbar.Hint{Key: m.keys.Hint(keymap.ActionToggleSidebar), Name: "playlist"})
	}
	return headerbar.Render(title, hints, m.width)
}

func (m Model) renderBody(l layout.Layout) string {
	stage := m.renderStage(l.StageWidth, l.BodyHeight)
	if m.countdown >= 0 && m.nextUp != nil {
		stage = overlay.Center(stage, m.renderBanner(l.StageWidth), l.StageWidth, l.BodyHeight)
	}
	if l.SidebarWidth == 0 {
		return stage
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, stage, m.sidebar.View())
}

// renderStage draws the bound track's details centered in the free area,
// below the thumbnail when one is shown.
func (m Model) renderStage(width, height int) string {
	lines := m.stageLines(width)
	if m.posterShown() {
		return m.renderPosterStage(width, height, lines)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

func (m Model) stageLines(width int) []string {
	st := styles.T().S()
	inner := max(width-4, 1)

	tr := m.status.Track
	if tr == nil {
		return []string{st.Muted.Render("Nothing to play")}
	}
	name := render.Truncate(render.Sanitize(tr.DisplayName()), inner-2)
	lines := []string{styles.T().Gradient(icons.FormatMedia(name, m.status.AudioOnly))}
	if tr.Author != "" {
		lines = append(lines, st.Muted.Render(render.Truncate(render.Sanitize(tr.Author), inner)))
	}
	var details []string
	for _, d := range []string{tr.Quality, tr.FileSize, tr.Duration} {
		if d != "" {
			details = append(details, d)
		}
	}
	if len(details) > 0 {
		lines = append(lines, st.Subtle.Render(render.Truncate(strings.Join(details, " · "), inner)))
	}
	return lines
}

// renderBanner draws the auto-advance countdown.
func (m Model) renderBanner(width int) string {
	st := styles.T().S()
	name := render.Truncate(render.Sanitize(m.nextUp.DisplayName()), max(width-24, 8))

	title := fmt.Sprintf("Next up: %s in %d", st.Title.Render(name), m.countdown)
	hint := st.Subtle.Render(fmt.Sprintf("%s cancel · %s play now",
		m.keys.Hint(keymap.ActionCancelAutoNext), m.keys.Hint(keymap.ActionSkipAutoNext)))
	return st.Banner.Render(title + "\n" + hint)
}

func (m Model) barState() playerbar.State {
	return playerbar.State{
		Status:   m.status,
		Index:    m.ctrl.CurrentIndex(),
		Total:    len(m.ctrl.Tracks()),
		Repeat:   m.mode.RepeatMode,
		Shuffle:  m.mode.Shuffle,
		Autoplay: m.mode.Autoplay,
		Playlist: m.ctrl.Mode() == playback.ModePlaylist,
	}
}

func (m Model) layout() layout.Layout {
	return layout.Compute(m.width, m.height, layout.Opts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height,
		Fullscreen:      m.screen.AltScreen(),
		Sidebar:         m.sidebarVisible(),
	})
}

func (m *Model) resize() {
	l := m.layout()
	m.sidebar.SetSize(l.SidebarWidth, l.BodyHeight)
	m.help.SetSize(min(m.width, helpWidth), l.Height)
	m.resizePoster(l)
}
