package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the quiz cards so that
// stacked boxes line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
// A focused card has a highlighted border.
func Card(content string, cw int, focused bool) string {
	border := theme.Border
	if focused {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw-2).
		Padding(0, 2).
		Render(content)
}

// Center places s in the middle of a line of the given width.
func Center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
