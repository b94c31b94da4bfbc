package ask

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/theme"
)

func (s *AskScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.notice != "" {
		body := theme.Warning.Render("Voice input unavailable") + "\n\n" +
			theme.Body.Render(s.notice) + "\n\n" +
			theme.Hint.Render("Press any key to continue")
		return "\n\n\n" + components.Center(components.Card(body, cw, true), width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Center(s.renderMic(cw), width))
	b.WriteString("\n\n")

	b.WriteString(components.Center(components.Card(s.input.View(), cw, s.clip == nil || !s.clip.Focused), width))
	b.WriteString("\n")

	if s.status != "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(s.status))
		b.WriteString("\n")
	}

	if s.asked != "" && !s.querying {
		b.WriteString("\n")
		body := theme.Dimmed.Render("You asked: ") + theme.Body.Render(s.asked)
		if s.answer != "" {
			body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Text).Width(cw-6).Render(s.answer)
		}
		b.WriteString(components.Center(components.Card(body, cw, false), width))
		b.WriteString("\n")
	}

	if s.clip != nil {
		b.WriteString(components.Center(s.clip.View(cw), width))
	}
	return b.String()
}

func (s *AskScreen) renderMic(cw int) string {
	switch {
	case s.listening:
		line := theme.Incorrect.Render("● Listening")
		if s.interim != "" {
			line += "  " + theme.Body.Render(s.interim)
		}
		return lipgloss.NewStyle().Width(cw).Render(line)
	case s.voiceOff:
		return theme.Dimmed.Render("Type your question and press Enter")
	default:
		return theme.Dimmed.Render("Press Ctrl+R to speak, or type your question")
	}
}
