// Package history lists finished quizzes from the event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/ui/theme"
)

// Limit is how many sessions the screen loads.
const Limit = 20

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// HistoryScreen displays past quiz sessions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummary
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Quizzes"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nCouldn't load past quizzes: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\nLoading past quizzes…")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo finished quizzes yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, sess := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		var pct float64
		if sess.Total > 0 {
			pct = float64(sess.Score) / float64(sess.Total) * 100
		}
		line := fmt.Sprintf("%s%s   %d/%d   %3.0f%%  %s",
			prefix, sess.Timestamp.Local().Format("Jan 02, 2006 15:04"),
			sess.Score, sess.Total, pct, quiz.BandFor(pct))
		b.WriteString(components.Center(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(components.Center(theme.Dimmed.Render(details(sess)), width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func details(sess store.SessionSummary) string {
	d := fmt.Sprintf("    %d correct · %d wrong · %d hints · %d hearts left",
		sess.CorrectAnswers, sess.IncorrectAnswers, sess.HintsUsed, sess.HeartsRemaining)
	if sess.EndedEarly {
		d += " · ended early"
	}
	return d
}
