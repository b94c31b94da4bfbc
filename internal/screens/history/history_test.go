package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessions []store.SessionSummary
	err      error
	limit    int
}

func (m *mockEventRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error   { return nil }
func (m *mockEventRepo) AppendHintEvent(context.Context, store.HintEventData) error       { return nil }
func (m *mockEventRepo) AppendSessionEvent(context.Context, store.SessionEventData) error { return nil }
func (m *mockEventRepo) AppendRequest(context.Context, store.RequestEventData) error      { return nil }
func (m *mockEventRepo) RecentSessions(_ context.Context, limit int) ([]store.SessionSummary, error) {
	m.limit = limit
	return m.sessions, m.err
}
func (m *mockEventRepo) RecentRequests(context.Context, int) ([]store.RequestEvent, error) {
	return nil, nil
}

func session(score, total int, early bool) store.SessionSummary {
	return store.SessionSummary{
		Timestamp: time.Date(2026, 9, 14, 9, 30, 0, 0, time.Local),
		SessionEventData: store.SessionEventData{
			Total: total, Score: score, CorrectAnswers: score, IncorrectAnswers: total - score,
			HintsUsed: 1, HeartsRemaining: 3 - (total - score), EndedEarly: early,
		},
	}
}

func load(t *testing.T, repo *mockEventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	scr, _ := s.Update(s.Init()())
	return scr.(*HistoryScreen)
}

func TestHistory_Loading(t *testing.T) {
	s := New(&mockEventRepo{})
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "Loading past quizzes") {
		t.Error("expected loading text before data arrives")
	}
}

func TestHistory_Empty(t *testing.T) {
	repo := &mockEventRepo{}
	s := load(t, repo)
	if repo.limit != Limit {
		t.Errorf("limit = %d, want %d", repo.limit, Limit)
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "No finished quizzes yet.") {
		t.Error("expected empty message")
	}
}

func TestHistory_Error(t *testing.T) {
	s := load(t, &mockEventRepo{err: errors.New("disk full")})
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "disk full") {
		t.Error("expected error in view")
	}
}

func TestHistory_ListAndExpand(t *testing.T) {
	s := load(t, &mockEventRepo{sessions: []store.SessionSummary{
		session(5, 5, false),
		session(1, 3, true),
	}})

	view := ansi.Strip(s.View(100, 30))
	for _, want := range []string{"Sep 14, 2026 09:30", "5/5", "100%", "excellent", "1/3", "needs practice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "hearts left") {
		t.Error("details should be collapsed")
	}

	scr, _ := s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s = scr.(*HistoryScreen)
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 (clamped)", s.selected)
	}

	scr, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = ansi.Strip(scr.View(100, 30))
	if !strings.Contains(view, "1 correct · 2 wrong · 1 hints · 1 hearts left · ended early") {
		t.Errorf("expected expanded details:\n%s", view)
	}
}

func TestHistory_QuitPops(t *testing.T) {
	s := load(t, &mockEventRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("q should pop the screen")
	}
}
