// Package playerbar renders the transport bar: the bound track, transport
// state, position, volume, rate, and playlist modes.
package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/theater/internal/icons"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/player"
	"github.com/llehouerou/theater/internal/playlist"
	"github.com/llehouerou/theater/internal/ui"
	"github.com/llehouerou/theater/internal/ui/render"
	"github.com/llehouerou/theater/internal/ui/styles"
)

// Height is the rendered height: two content rows plus the border.
const Height = 4

// State holds everything needed to render the bar.
type State struct {
	Status   playback.Status
	Index    int // zero-based position in the playlist
	Total    int
	Repeat   playlist.RepeatMode
	Shuffle  bool
	Autoplay bool
	Playlist bool // sequencing applies; hides modes in single mode
}

// Render returns the bar for the given outer width.
func Render(s State, width int) string {
	t := styles.T()
	inner := max(width-4, 1) // border and padding

	top := render.Row(titleLine(s, inner/2), modeLine(s), inner)
	bottom := transportLine(s, inner)

	return t.PanelStyle(false).
		Padding(0, 1).
		Width(width - 2).
		Render(top + "\n" + bottom)
}

func titleLine(s State, maxWidth int) string {
	st := styles.T().S()
	tr := s.Status.Track
	if tr == nil {
		return st.Muted.Render("Nothing loaded")
	}

	title := icons.FormatMedia(tr.DisplayName(), s.Status.AudioOnly)
	line := st.Title.Render(render.Truncate(title, maxWidth))
	if tr.Author != "" {
		room := maxWidth - lipgloss.Width(line) - 3
		if room > 3 {
			line += st.Muted.Render(" · " + render.Truncate(tr.Author, room))
		}
	}
	return line
}

func modeLine(s State) string {
	st := styles.T().S()
	var parts []string
	if s.Playlist {
		if s.Shuffle {
			parts = append(parts, icons.Shuffle())
		}
		switch s.Repeat {
		case playlist.RepeatAll:
			parts = append(parts, icons.RepeatAll())
		case playlist.RepeatOne:
			parts = append(parts, icons.RepeatOne())
		case playlist.RepeatOff:
			// No icon for repeat off
		}
		if s.Autoplay {
			parts = append(parts, icons.Autoplay())
		}
	}
	if s.Status.Fullscreen {
		parts = append(parts, icons.Fullscreen())
	}
	if s.Status.PictureInPicture {
		parts = append(parts, icons.PiP())
	}
	if s.Total > 1 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.Index+1, s.Total))
	}
	return st.Muted.Render(strings.Join(parts, "  "))
}

func transportLine(s State, width int) string {
	st := styles.T().S()
	status := s.Status

	if status.HasError {
		return st.Error.Render(render.Truncate(status.ErrorReason, width))
	}

	right := volumeText(status.Volume, status.Muted)
	if status.Rate != player.DefaultRate && status.Rate > 0 {
		right = render.FormatRate(status.Rate) + "  " + right
	}
	right = st.Muted.Render(right)

	left := icons.PlayState(status.Playing) + " "
	if status.Loading {
		return render.Row(left+st.Muted.Render("Loading…"), right, width)
	}
	left += render.FormatTime(status.Position) + " "
	end := " " + render.FormatTime(status.Duration)

	barWidth := width - lipgloss.Width(left) - lipgloss.Width(end) - lipgloss.Width(right) - 2
	if barWidth < ui.MinProgressBarWidth {
		return render.Row(left+"/"+end, right, width)
	}
	return render.Row(left+Bar(status.Progress(), barWidth)+end, right, width)
}

// Bar renders a progress bar of width cells filled to ratio.
func Bar(ratio float64, width int) string {
	t := styles.T()
	p := progress.New(
		progress.WithSolidFill(string(t.Primary)),
		progress.WithFillCharacters('━', '─'),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	p.EmptyColor = string(t.FgSubtle)
	return p.ViewAs(max(0, min(1, ratio)))
}

func volumeText(volume float64, muted bool) string {
	icon := icons.Volume(icons.LevelFor(volume, muted))
	if muted {
		return icon + " muted"
	}
	return icon + " " + render.FormatPercent(volume)
}
