package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a question with lettered options. Cursor is the
// highlighted option, -1 before anything is chosen. Once Revealed, the
// correct option and a wrong pick are coloured.
type MultiChoice struct {
	Question string
	Options  []string
	Correct  int
	Cursor   int
	Revealed bool
}

// NewMultiChoice creates a multiple-choice component with no selection.
func NewMultiChoice(question string, options []string, correct int) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Correct:  correct,
		Cursor:   -1,
	}
}

// Update moves the cursor on ↑↓ (or k/j) and jumps to an option on 1-4.
// It reports whether the cursor changed. Key presses after Revealed are
// ignored.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Revealed {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, false
	}

	prev := m.Cursor
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		} else if m.Cursor < 0 && len(m.Options) > 0 {
			m.Cursor = 0
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.Options) {
			m.Cursor = i
		}
	}
	return m, m.Cursor != prev
}

// View renders the question and its options at the given width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.Correct:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.Cursor:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = theme.Dimmed
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
