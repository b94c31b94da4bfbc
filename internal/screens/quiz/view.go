package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	switch s.ctrl.Phase() {
	case qz.PhaseResume:
		return s.renderResume(width)
	case qz.PhaseQuestion, qz.PhaseFeedback:
		return s.renderQuestion(width)
	case qz.PhaseResults:
		return renderCentered(width, theme.Dimmed, "\n\n\nTallying your results…")
	}
	return renderCentered(width, theme.Dimmed, "\n\n\nLoading your visit quiz…")
}

func (s *QuizScreen) renderResume(width int) string {
	rec := s.ctrl.PendingResume()
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(renderCentered(width, theme.Title, "Welcome back!"))
	b.WriteString("\n")
	if rec != nil {
		b.WriteString(renderCentered(width, theme.Subtitle, fmt.Sprintf(
			"You were on question %d of %d. Pick up where you left off?",
			rec.State.CurrentQuestionIndex+1, len(rec.Questions))))
	}
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.Correct, "[Y] Resume"))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.Selected, "[N] Start over"))
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	st := s.ctrl.State()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.Center(components.QuestionProgress(st.CurrentQuestionIndex, s.ctrl.Total(), cw).View(), width))
	b.WriteString("\n\n")
	b.WriteString(components.Center(components.Card(s.mc.View(cw-6), cw, false), width))
	b.WriteString("\n")

	if s.ctrl.Phase() == qz.PhaseFeedback {
		b.WriteString(s.renderFeedback(width, cw))
	} else {
		b.WriteString(components.Center(s.renderControls(), width))
	}
	b.WriteString("\n")

	if s.status != "" {
		b.WriteString(renderCentered(width, theme.Hint, s.status))
		b.WriteString("\n")
	}
	if s.clip != nil {
		b.WriteString("\n")
		b.WriteString(components.Center(s.clip.View(cw), width))
	}
	return b.String()
}

func (s *QuizScreen) renderControls() string {
	confirm := components.NewButton(s.confirmLabel(), s.ctrl.CanConfirm()).View()

	var hint string
	switch {
	case s.ctrl.HintInFlight():
		hint = theme.Dimmed.Render("Hint…")
	case s.ctrl.HintAvailable():
		hint = theme.Body.Render("[H] Hint")
	default:
		hint = theme.Dimmed.Render("Hint used")
	}
	return confirm + "   " + hint
}

func (s *QuizScreen) renderFeedback(width, cw int) string {
	out := s.ctrl.LastOutcome()
	if out == nil {
		return ""
	}
	q, _ := s.ctrl.Current()

	var b strings.Builder
	if out.Correct {
		b.WriteString(renderCentered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(renderCentered(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Dimmed, "Correct answer: "+q.CorrectOption()))
	}
	b.WriteString("\n")

	if q.Hint != "" {
		hint := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(q.Hint)
		b.WriteString(components.Center(hint, width))
		b.WriteString("\n")
	}
	if out.OutOfHearts {
		b.WriteString("\n")
		b.WriteString(renderCentered(width, theme.Warning, "You're out of hearts!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.Dimmed, "Press any key to continue..."))
	return b.String()
}

func renderCentered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

func renderError(width int, errMsg string) string {
	return renderCentered(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\n%s\n\nPress r to try again.", errMsg))
}
