// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/llehouerou/theater/internal/ui/render"
	"github.com/llehouerou/theater/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const appName = "theater"

// Hint is a key shown on the right of the bar.
type Hint struct {
	Key  string
	Name string
}

// Render returns the header bar for the given width: the app name and
// playlist title on the left, key hints on the right.
func Render(title string, hints []Hint, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	st := t.S()

	left := t.Gradient(appName)
	if title != "" {
		room := max(width/2-len(appName)-2, 1)
		left += st.Muted.Render("  " + render.Truncate(render.Sanitize(title), room))
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if h.Key == "" {
			continue
		}
		parts = append(parts, st.Key.Render(h.Key)+" "+st.Subtle.Render(h.Name))
	}
	right := strings.Join(parts, st.Subtle.Render(" │ "))

	return render.Row(left, right, width)
}
