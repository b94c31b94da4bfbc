// Package results shows the summary at the end of a quiz.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/ui/components"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/ui/theme"
)

// Options wires the actions offered below the summary.
type Options struct {
	OnRestart func() tea.Cmd
	OnAsk     func() tea.Cmd // nil hides "Ask about your visit"
	OnHistory func() tea.Cmd // nil hides "Past quizzes"
}

// ResultsScreen displays a quiz summary.
type ResultsScreen struct {
	summary quiz.Summary
	opts    Options
	menu    components.Menu
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen.
func New(summary quiz.Summary, opts Options) *ResultsScreen {
	items := []components.MenuItem{
		{Label: "Take the quiz again", Action: opts.OnRestart, Disabled: opts.OnRestart == nil},
	}
	if opts.OnAsk != nil {
		items = append(items, components.MenuItem{Label: "Ask about your visit", Action: opts.OnAsk})
	}
	if opts.OnHistory != nil {
		items = append(items, components.MenuItem{Label: "Past quizzes", Action: opts.OnHistory})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	return &ResultsScreen{
		summary: summary,
		opts:    opts,
		menu:    components.NewMenu(items),
	}
}

// Summary returns the summary being shown.
func (s *ResultsScreen) Summary() quiz.Summary { return s.summary }

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) HeaderStatus() string {
	return components.Hearts(s.summary.HeartsRemaining, quiz.MaxHearts)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Restart"},
	}
	if s.opts.OnAsk != nil {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "Ask"})
	}
	if s.opts.OnHistory != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Past quizzes"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r":
		if s.opts.OnRestart != nil {
			return s, s.opts.OnRestart()
		}
		return s, nil
	case "a":
		if s.opts.OnAsk != nil {
			return s, s.opts.OnAsk()
		}
		return s, nil
	case "p":
		if s.opts.OnHistory != nil {
			return s, s.opts.OnHistory()
		}
		return s, nil
	case "q":
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	heading := "Quiz complete!"
	if sum.EndedEarly {
		heading = "Quiz over"
	}
	b.WriteString(centered(width, theme.Title, heading))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%d / %d", sum.Score, sum.Total)
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), score))
	b.WriteString("\n")
	b.WriteString(centered(width, bandStyle(sum.Band), fmt.Sprintf("%.0f%% · %s", sum.Percentage, sum.Band)))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Subtitle, sum.Message))
	b.WriteString("\n\n")

	stats := []string{
		stat("Correct", fmt.Sprint(sum.Correct), theme.Success),
		stat("Incorrect", fmt.Sprint(sum.Incorrect), theme.Error),
		stat("Hints used", fmt.Sprint(sum.HintsUsed), theme.Accent),
		stat("Hearts", components.Hearts(sum.HeartsRemaining, quiz.MaxHearts), theme.Heart),
	}
	b.WriteString(components.Center(components.Card(strings.Join(stats, "\n"), cw, false), width))
	b.WriteString("\n\n")
	b.WriteString(components.Center(s.menu.View(), width))

	return b.String()
}

func bandStyle(band quiz.Band) lipgloss.Style {
	switch band {
	case quiz.BandExcellent:
		return theme.Correct
	case quiz.BandGood:
		return theme.Selected
	default:
		return theme.Warning
	}
}

func stat(label, value string, c color.Color) string {
	return theme.Dimmed.Render(fmt.Sprintf("%-12s", label)) + " " +
		lipgloss.NewStyle().Foreground(c).Bold(true).Render(value)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
