// Package ui holds sizing shared by the panels.
package ui

const (
	// ScrollMargin keeps this many rows visible around the cursor.
	ScrollMargin = 5

	// BorderHeight is the rows (and columns) taken by a rounded border.
	BorderHeight = 2

	// PanelOverhead is the border plus the title row and its rule.
	PanelOverhead = BorderHeight + 2

	// SidebarWidthDivisor gives the sidebar a third of the window.
	SidebarWidthDivisor = 3
	MinSidebarWidth     = 28

	MinProgressBarWidth = 5
)

// Base is embedded by panels for focus and size:
//
//	type Model struct {
//	    ui.Base
//	    tracks []playlist.Track
//	}
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// InnerWidth is the width inside the border.
func (b Base) InnerWidth() int { return max(b.width-BorderHeight, 0) }

// Rows is the number of list rows below the panel title.
func (b Base) Rows() int { return max(b.height-PanelOverhead, 0) }
