// Package overlay draws popups and banners over a rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws box in the middle of a width x height base.
func Center(base, box string, width, height int) string {
	if box == "" || width <= 0 || height <= 0 {
		return base
	}
	w, h := lipgloss.Size(box)
	return At(base, box, max((height-h)/2, 0), max((width-w)/2, 0), width, height)
}

// At draws box with its top-left corner at (row, col). The base is padded
// to width x height first; box cells past the edge are dropped. Styled
// text on either side is cut by display column.
func At(base, box string, row, col, width, height int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, over := range strings.Split(box, "\n") {
		r := row + i
		if r < 0 || r >= len(lines) {
			continue
		}
		lines[r] = splice(lines[r], over, col, width)
	}
	return strings.Join(lines, "\n")
}

// splice replaces the columns of line under over, starting at col.
func splice(line, over string, col, width int) string {
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	end := min(col+ansi.StringWidth(over), width)
	if end <= col {
		return line
	}
	return ansi.Cut(line, 0, col) + ansi.Cut(over, 0, end-col) + ansi.Cut(line, end, width)
}
