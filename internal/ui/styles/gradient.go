package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackGray stands in for ANSI palette colors, which have no RGB value.
var fallbackGray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient renders bold text blended from the theme's primary to its
// secondary color, one color per grapheme.
func (t *Theme) Gradient(text string) string {
	return Blend(text, t.Primary, t.Secondary)
}

// Blend renders bold text with a horizontal gradient in HCL space.
func Blend(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().
			Foreground(stop(from, to, i, len(clusters))).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

// stop returns the i-th of n colors between from and to.
func stop(from, to lipgloss.Color, i, n int) lipgloss.Color {
	if n < 2 {
		return from
	}
	start, end := toColorful(from), toColorful(to)
	return lipgloss.Color(start.BlendHcl(end, float64(i)/float64(n-1)).Clamped().Hex())
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return fallbackGray
}
