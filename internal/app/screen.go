package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/theater/internal/player"
)

// Screen implements player.Capabilities for a terminal: fullscreen is the
// alternate screen buffer, and picture-in-picture does not exist.
//
// Requests only record the switch; the program applies it when Update
// drains the pending command with Flush.
type Screen struct {
	mu      sync.Mutex
	alt     bool
	pending tea.Cmd
}

// NewScreen returns a screen in inline mode.
func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) RequestFullscreen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alt = true
	s.pending = tea.EnterAltScreen
	return nil
}

func (s *Screen) ExitFullscreen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alt = false
	s.pending = tea.ExitAltScreen
	return nil
}

func (s *Screen) PictureInPictureSupported() bool { return false }

func (s *Screen) RequestPictureInPicture() error { return player.ErrUnsupported }

func (s *Screen) ExitPictureInPicture() error { return player.ErrUnsupported }

// AltScreen reports whether the alternate screen is active.
func (s *Screen) AltScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alt
}

// Flush returns the pending screen switch, if any, and clears it.
func (s *Screen) Flush() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmd := s.pending
	s.pending = nil
	return cmd
}

var _ player.Capabilities = (*Screen)(nil)
