// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/theater/internal/keymap"
	"github.com/llehouerou/theater/internal/ui"
	"github.com/llehouerou/theater/internal/ui/styles"
)

// CloseMsg signals the popup should close.
type CloseMsg struct{}

// Model holds the state for the help popup.
type Model struct {
	ui.Base
	sections     []keymap.Section
	scrollOffset int
}

// New creates a help popup listing the keymap's sections.
func New(km *keymap.Keymap) Model {
	return Model{sections: km.Sections()}
}

// Update handles keys while the popup is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View renders the popup with its border.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	lines := strings.Split(m.buildContent(), "\n")
	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))

	var b strings.Builder
	b.WriteString(t.S().Title.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render(m.buildFooter()))

	return t.PanelStyle(true).Padding(0, 1).Render(b.String())
}

func (m Model) buildContent() string {
	st := styles.T().S()

	keyWidth := 0
	for _, sec := range m.sections {
		for _, b := range sec.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(keyLabel(b)))
		}
	}

	blocks := make([]string, 0, len(m.sections))
	for _, sec := range m.sections {
		rows := []string{st.Playing.Render(sec.Group.String())}
		for _, b := range sec.Bindings {
			label := keyLabel(b)
			rows = append(rows, st.Key.Render(label+strings.Repeat(" ", keyWidth-lipgloss.Width(label)))+
				"  "+st.Base.Render(b.Help))
		}
		blocks = append(blocks, strings.Join(rows, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// keyLabel joins a binding's keys for display, naming the space bar.
func keyLabel(b keymap.Binding) string {
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		if k == " " {
			continue
		}
		keys = append(keys, k)
	}
	return strings.Join(keys, ", ")
}

func (m Model) buildFooter() string {
	if m.totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// title, blank, blank, footer, border
	return max(m.Height()-8, 5)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	return max(m.totalLines()-m.visibleHeight(), 0)
}
