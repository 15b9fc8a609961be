//nolint:goconst // test cases intentionally repeat strings for readability
package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/theater/internal/icons"
	"github.com/llehouerou/theater/internal/playback"
	"github.com/llehouerou/theater/internal/playlist"
)

func init() {
	icons.Init("none")
}

func plain(s State, width int) string {
	return ansi.Strip(Render(s, width))
}

func track() *playlist.Track {
	return &playlist.Track{ID: "a", Name: "Opening", Author: "Host", IsAudio: true}
}

func TestRender_Playing(t *testing.T) {
	got := plain(State{
		Status: playback.Status{
			Playing:   true,
			Position:  83 * time.Second,
			Duration:  296 * time.Second,
			Volume:    0.8,
			Rate:      1,
			Track:     track(),
			AudioOnly: true,
		},
		Index:    1,
		Total:    5,
		Repeat:   playlist.RepeatAll,
		Shuffle:  true,
		Autoplay: true,
		Playlist: true,
	}, 100)

	for _, want := range []string{"Opening", "Host", "01:23", "04:56", "[vol+] 80%", "[S]", "[R]", "[A]", "2/5", ">"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "1x") {
		t.Errorf("Render() shows the default rate:\n%s", got)
	}
}

func TestRender_Height(t *testing.T) {
	out := Render(State{Status: playback.Status{Track: track(), Volume: 1, Rate: 1}}, 80)
	if h := lipgloss.Height(out); h != Height {
		t.Errorf("height = %d, want %d", h, Height)
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("width = %d, want 80", w)
	}
}

func TestRender_States(t *testing.T) {
	tests := []struct {
		name   string
		status playback.Status
		want   []string
		absent []string
	}{
		{
			name:   "nothing bound",
			status: playback.Status{Volume: 1, Rate: 1},
			want:   []string{"Nothing loaded"},
		},
		{
			name:   "loading",
			status: playback.Status{Track: track(), Loading: true, Volume: 1, Rate: 1},
			want:   []string{"Loading…"},
			absent: []string{"00:00"},
		},
		{
			name:   "error",
			status: playback.Status{Track: track(), HasError: true, ErrorReason: "Format not supported", Volume: 1, Rate: 1},
			want:   []string{"Format not supported"},
		},
		{
			name:   "muted",
			status: playback.Status{Track: track(), Muted: true, Volume: 0.6, Rate: 1},
			want:   []string{"[mute] muted"},
		},
		{
			name:   "low volume and fast rate",
			status: playback.Status{Track: track(), Volume: 0.3, Rate: 1.5},
			want:   []string{"[vol-] 30%", "1.5x"},
		},
		{
			name:   "paused",
			status: playback.Status{Track: track(), Volume: 1, Rate: 1, Duration: time.Hour + time.Second},
			want:   []string{"||", "1:00:01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plain(State{Status: tt.status}, 90)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render() missing %q in:\n%s", w, got)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("Render() unexpectedly contains %q in:\n%s", a, got)
				}
			}
		})
	}
}

func TestRender_SingleModeHidesModes(t *testing.T) {
	got := plain(State{
		Status:   playback.Status{Track: track(), Volume: 1, Rate: 1},
		Repeat:   playlist.RepeatAll,
		Shuffle:  true,
		Autoplay: true,
		Total:    1,
	}, 90)

	for _, absent := range []string{"[S]", "[R]", "[A]", "1/1"} {
		if strings.Contains(got, absent) {
			t.Errorf("Render() shows %q in single mode:\n%s", absent, got)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		filled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{2, 10},
	}

	for _, tt := range tests {
		got := ansi.Strip(Bar(tt.ratio, 10))
		if n := strings.Count(got, "━"); n != tt.filled {
			t.Errorf("Bar(%v) filled = %d, want %d (%q)", tt.ratio, n, tt.filled, got)
		}
		if w := lipgloss.Width(got); w != 10 {
			t.Errorf("Bar(%v) width = %d, want 10", tt.ratio, w)
		}
	}
}
