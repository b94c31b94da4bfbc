package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/recall/internal/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testSummary(score, total int) quiz.Summary {
	st := quiz.NewState()
	st.Score = score
	st.CorrectAnswers = score
	st.IncorrectAnswers = total - score
	st.CurrentQuestionIndex = total
	return quiz.Summarize(st, total)
}

func TestResultsScreen_View(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  []string
	}{
		{"excellent", 5, []string{"Quiz complete!", "5 / 5", "100% · excellent", "Excellent memory!"}},
		{"good", 3, []string{"3 / 5", "60% · good"}},
		{"needs practice", 1, []string{"1 / 5", "20% · needs practice", "Keep practicing!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testSummary(tt.score, 5), Options{})
			view := ansi.Strip(s.View(100, 30))
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("view missing %q:\n%s", want, view)
				}
			}
		})
	}
}

func TestResultsScreen_Restart(t *testing.T) {
	restarted := false
	s := New(testSummary(2, 5), Options{
		OnRestart: func() tea.Cmd {
			restarted = true
			return nil
		},
	})

	s.Update(keyPress('r'))
	if !restarted {
		t.Error("r should restart the quiz")
	}
}

func TestResultsScreen_MenuActions(t *testing.T) {
	var asked, restarted bool
	s := New(testSummary(4, 5), Options{
		OnRestart: func() tea.Cmd { restarted = true; return nil },
		OnAsk:     func() tea.Cmd { asked = true; return nil },
	})

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !asked || restarted {
		t.Errorf("asked=%v restarted=%v, want only ask", asked, restarted)
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Ask about your visit") {
		t.Error("menu should offer the ask screen")
	}
}

func TestResultsScreen_NoAskOption(t *testing.T) {
	s := New(testSummary(4, 5), Options{})
	if strings.Contains(ansi.Strip(s.View(100, 30)), "Ask about your visit") {
		t.Error("ask option should be hidden without OnAsk")
	}
	if _, cmd := s.Update(keyPress('a')); cmd != nil {
		t.Error("a should do nothing without OnAsk")
	}
}

func TestResultsScreen_Quit(t *testing.T) {
	s := New(testSummary(4, 5), Options{})
	_, cmd := s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestResultsScreen_HeaderHearts(t *testing.T) {
	sum := testSummary(4, 5)
	sum.HeartsRemaining = 2
	s := New(sum, Options{})
	if got := strings.Count(ansi.Strip(s.HeaderStatus()), "♥"); got != quiz.MaxHearts {
		t.Errorf("hearts drawn = %d, want %d", got, quiz.MaxHearts)
	}
}
