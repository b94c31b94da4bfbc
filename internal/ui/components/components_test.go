package components

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/recall/internal/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestHearts(t *testing.T) {
	tests := []struct {
		remaining int
		want      int
	}{
		{3, 3},
		{1, 3},
		{0, 3},
		{-2, 3},
		{7, 3},
	}
	for _, tt := range tests {
		got := strings.Count(Hearts(tt.remaining, quiz.MaxHearts), heartGlyph)
		if got != tt.want {
			t.Errorf("Hearts(%d) drew %d hearts, want %d", tt.remaining, got, tt.want)
		}
	}
}

func TestQuestionProgress(t *testing.T) {
	p := QuestionProgress(1, 5, 60)
	if p.Label != "Question 2 of 5" {
		t.Errorf("Label = %q", p.Label)
	}
	if p.Percent != 0.4 {
		t.Errorf("Percent = %v, want 0.4", p.Percent)
	}
	if !strings.Contains(ansi.Strip(p.View()), "Question 2 of 5") {
		t.Error("view missing label")
	}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, 2)

	m, changed := m.Update(specialKey(tea.KeyDown))
	if !changed || m.Cursor != 0 {
		t.Fatalf("first down: cursor %d changed %v, want 0 true", m.Cursor, changed)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(specialKey(tea.KeyDown))
	m, changed = m.Update(specialKey(tea.KeyDown))
	if changed || m.Cursor != 3 {
		t.Errorf("cursor should stop at the last option, got %d", m.Cursor)
	}

	m, _ = m.Update(keyPress('2'))
	if m.Cursor != 1 {
		t.Errorf("number key: cursor %d, want 1", m.Cursor)
	}
	m, _ = m.Update(keyPress('9'))
	if m.Cursor != 1 {
		t.Errorf("unknown key moved the cursor to %d", m.Cursor)
	}

	m.Revealed = true
	m, changed = m.Update(keyPress('4'))
	if changed || m.Cursor != 1 {
		t.Error("revealed choice must ignore keys")
	}
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice("Which pharmacy?", []string{"North", "South", "East", "West"}, 0)
	m.Cursor = 2
	m.Revealed = true
	v := ansi.Strip(m.View(60))
	for _, want := range []string{"Which pharmacy?", "A)  North  ✓", "C)  East  ✗", "D)  West"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestMenu(t *testing.T) {
	var picked string
	action := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Restart", Action: action("restart")},
		{Label: "Ask", Action: action("ask")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up moved onto a disabled item")
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	m.Update(specialKey(tea.KeyEnter))
	if picked != "ask" {
		t.Errorf("picked %q, want ask", picked)
	}
}

func testHint() quiz.TimingHint {
	return quiz.TimingHint{Start: 40, End: 50, VideoID: "visit-1"}
}

func TestNewClipPanel_InvalidWindow(t *testing.T) {
	_, err := NewClipPanel(quiz.TimingHint{Start: 10, End: 10}, "")
	if err == nil {
		t.Fatal("expected error for empty window")
	}
}

func TestClipPanel_SpaceStartsTicking(t *testing.T) {
	c, err := NewClipPanel(testHint(), "https://media.example")
	if err != nil {
		t.Fatal(err)
	}
	if c.MediaURL() != "https://media.example/visit-1.mp4" {
		t.Errorf("MediaURL = %q", c.MediaURL())
	}

	c, cmd := c.Update(specialKey(tea.KeySpace))
	if !c.Player().Playing() {
		t.Fatal("space should start playback")
	}
	if cmd == nil {
		t.Fatal("expected a tick command")
	}

	c.last = time.Unix(100, 0)
	c, cmd = c.Update(clipTickMsg{seq: c.seq, at: time.Unix(103, 0)})
	if got := c.Player().Position(); got != 43 {
		t.Errorf("position after 3s = %v, want 43", got)
	}
	if cmd == nil {
		t.Error("playing panel should schedule another tick")
	}

	// A tick from an earlier play run is ignored.
	c, cmd = c.Update(clipTickMsg{seq: c.seq - 1, at: time.Unix(200, 0)})
	if cmd != nil || c.Player().Position() != 43 {
		t.Error("stale tick should be ignored")
	}
}

func TestClipPanel_EndRewindsAndStops(t *testing.T) {
	c, _ := NewClipPanel(testHint(), "")
	c, _ = c.Update(specialKey(tea.KeySpace))
	c.last = time.Unix(0, 0)

	c, cmd := c.Update(clipTickMsg{seq: c.seq, at: time.Unix(11, 0)})
	if cmd != nil {
		t.Error("ticking should stop at the end of the window")
	}
	if c.Player().Playing() || c.Player().Position() != 40 {
		t.Errorf("end of window: playing=%v pos=%v, want paused at 40", c.Player().Playing(), c.Player().Position())
	}
}

func TestClipPanel_SeekNeedsFocus(t *testing.T) {
	c, _ := NewClipPanel(testHint(), "")
	c, _ = c.Update(specialKey(tea.KeyRight))
	if c.Player().Position() != 40 {
		t.Error("unfocused panel should ignore seek keys")
	}

	c.Focused = true
	c, _ = c.Update(specialKey(tea.KeyRight))
	c, _ = c.Update(specialKey(tea.KeyRight))
	c, _ = c.Update(specialKey(tea.KeyRight))
	if c.Player().Position() != 50 {
		t.Errorf("seek should clamp to the window end, got %v", c.Player().Position())
	}
	c, _ = c.Update(specialKey(tea.KeyLeft))
	if c.Player().Position() != 45 {
		t.Errorf("seek back: got %v, want 45", c.Player().Position())
	}
	if len(c.KeyHints()) != 3 {
		t.Errorf("focused panel should offer seek hints")
	}
}

func TestClipPanel_View(t *testing.T) {
	c, _ := NewClipPanel(testHint(), "")
	v := ansi.Strip(c.View(60))
	for _, want := range []string{"Hint clip", "0:40", "0:50", "(10s)"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}
