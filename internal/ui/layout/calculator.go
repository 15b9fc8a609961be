// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/theater/internal/ui"

// InlineHeight caps the view height outside the alternate screen.
const InlineHeight = 14

// MinStageWidth is the narrowest the track stage may get before the
// sidebar is dropped.
const MinStageWidth = 24

// Opts contains the parameters needed to lay out the player.
type Opts struct {
	HeaderHeight    int
	PlayerBarHeight int
	Fullscreen      bool // alternate screen: use the whole terminal
	Sidebar         bool // the playlist panel is wanted
}

// Layout holds the computed region sizes.
type Layout struct {
	Height       int // total rendered height
	BodyHeight   int // stage and sidebar height
	StageWidth   int
	SidebarWidth int // 0 when the sidebar is not drawn
}

// Compute lays out a windowWidth x windowHeight terminal.
func Compute(windowWidth, windowHeight int, opts Opts) Layout {
	l := Layout{Height: ViewHeight(windowHeight, opts.Fullscreen)}
	l.BodyHeight = ContentHeight(l.Height, opts)
	if opts.Sidebar {
		l.SidebarWidth = SidebarWidth(windowWidth)
	}
	l.StageWidth = windowWidth - l.SidebarWidth
	return l
}

// ViewHeight returns the rendered height: the whole window in fullscreen,
// otherwise at most InlineHeight rows.
func ViewHeight(windowHeight int, fullscreen bool) int {
	if fullscreen {
		return windowHeight
	}
	return min(windowHeight, InlineHeight)
}

// ContentHeight calculates the available height for the body (stage and
// sidebar): the view height minus header and player bar.
func ContentHeight(viewHeight int, opts Opts) int {
	return max(viewHeight-opts.HeaderHeight-opts.PlayerBarHeight, 0)
}

// SidebarWidth returns the sidebar width for a window, or 0 when the stage
// would become narrower than MinStageWidth.
func SidebarWidth(windowWidth int) int {
	w := max(windowWidth/ui.SidebarWidthDivisor, ui.MinSidebarWidth)
	if windowWidth-w < MinStageWidth {
		return 0
	}
	return w
}
