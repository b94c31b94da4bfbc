package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/ui/theme"
)

// ClipBar renders a clip player as a scrubber line:
//
//	▶ 0:42 ━━━━━●────── 0:55  (13s)
func ClipBar(p *clip.Player, width int) string {
	if p == nil {
		return ""
	}
	w := p.Window()

	icon := "▶"
	if p.Playing() {
		icon = "❚❚"
	}
	left := theme.Selected.Render(icon) + " " +
		theme.Body.Render(clip.FormatTime(p.Position()))
	right := theme.Body.Render(clip.FormatTime(w.End)) + "  " +
		theme.Dimmed.Render(fmt.Sprintf("(%s)", clip.FormatDuration(w.Duration())))

	track := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if track < 5 {
		track = 5
	}
	head := int(float64(track-1) * p.Progress())
	if head < 0 {
		head = 0
	}
	if head > track-1 {
		head = track - 1
	}

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", head)) +
		theme.Selected.Render("●") +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", track-1-head))

	return left + " " + bar + " " + right
}
