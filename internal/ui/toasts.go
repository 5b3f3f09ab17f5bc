package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/concepta/internal/notify"
)

// visibleToasts is the newest maxToasts notifications, oldest first.
// Older ones stay live and reappear as the newer ones go.
func (m Model) visibleToasts() []notify.Notification {
	active := m.notes.Active()
	if len(active) > maxToasts {
		active = active[len(active)-maxToasts:]
	}
	return active
}

// dismissToast removes the oldest notification on screen.
func (m *Model) dismissToast() {
	if shown := m.visibleToasts(); len(shown) > 0 {
		m.notes.Dismiss(shown[0].ID)
	}
}

// renderToasts stacks the visible notifications, oldest first.
func (m Model) renderToasts() string {
	active := m.visibleToasts()
	if len(active) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	width := toastWidth
	if m.width-2 < width {
		width = m.width - 2
	}

	lines := make([]string, 0, len(active))
	for _, n := range active {
		msg := truncate(firstLine(n.Message), width-2)
		lines = append(lines, styles.KindStyle(n.Kind).Render(msg))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, strings.Join(lines, "\n"))
}
