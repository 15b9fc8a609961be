package helpbindings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/theater/internal/keymap"
)

func newHelp(width, height int) Model {
	m := New(keymap.Default())
	m.SetSize(width, height)
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func assertClosed(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Fatalf("expected CloseMsg, got %T", cmd())
	}
}

func TestHelpBindings_Close(t *testing.T) {
	tests := []tea.KeyMsg{
		{Type: tea.KeyEsc},
		key("q"),
		key("?"),
	}

	for _, msg := range tests {
		t.Run(msg.String(), func(t *testing.T) {
			_, cmd := newHelp(80, 24).Update(msg)
			assertClosed(t, cmd)
		})
	}
}

func TestHelpBindings_ListsPlayerKeys(t *testing.T) {
	got := ansi.Strip(newHelp(80, 200).View())

	for _, want := range []string{"Playback", "Playlist", "space, k", "Play/pause", "Picture-in-picture", "Cancel countdown", "?/esc close"} {
		if !strings.Contains(got, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestHelpBindings_Scroll(t *testing.T) {
	m := newHelp(80, 20)
	if m.maxScroll() == 0 {
		t.Fatal("expected content taller than the popup")
	}
	if !strings.Contains(ansi.Strip(m.View()), "j/k scroll") {
		t.Error("footer should mention scrolling")
	}

	m, _ = m.Update(key("k"))
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d after k at top, want 0", m.scrollOffset)
	}

	for range m.maxScroll() + 5 {
		m, _ = m.Update(key("j"))
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want %d", m.scrollOffset, m.maxScroll())
	}
}

func TestHelpBindings_ZeroSize(t *testing.T) {
	if got := New(keymap.Default()).View(); got != "" {
		t.Errorf("View() with no size = %q, want empty", got)
	}
}
