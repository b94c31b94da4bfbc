package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/recall/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(rev int64) quiz.Record {
	sel := 1
	return quiz.Record{
		State: quiz.State{
			CurrentQuestionIndex: 2,
			Score:                1,
			SelectedAnswer:       &sel,
			HintsUsed:            1,
			CorrectAnswers:       1,
			IncorrectAnswers:     1,
			HeartsRemaining:      2,
		},
		Questions: []quiz.Question{
			{Text: "Q1", Options: []string{"a", "b", "c", "d"}, Correct: 0},
			{Text: "Q2", Options: []string{"a", "b", "c", "d"}, Correct: 1},
			{Text: "Q3", Options: []string{"a", "b", "c", "d"}, Correct: 2},
		},
		Revision: rev,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"progress", "answer_events", "hint_events", "session_events", "request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestOpenFileDatabaseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recall.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.ProgressRepo("k").Save(ctx, testRecord(1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	rec, err := s.ProgressRepo("k").Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec == nil {
		t.Fatal("record lost across reopen")
	}
}

func TestProgress_LoadEmpty(t *testing.T) {
	s := openTestStore(t)
	rec, err := s.ProgressRepo("quizProgress").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record when none saved")
	}
}

func TestProgress_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo("quizProgress")
	ctx := context.Background()

	want := testRecord(3)
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.Revision != 3 {
		t.Errorf("revision = %d, want 3", got.Revision)
	}
	gs, ws := got.State, want.State
	if gs.CurrentQuestionIndex != ws.CurrentQuestionIndex || gs.Score != ws.Score ||
		gs.HintsUsed != ws.HintsUsed || gs.CorrectAnswers != ws.CorrectAnswers ||
		gs.IncorrectAnswers != ws.IncorrectAnswers || gs.HeartsRemaining != ws.HeartsRemaining {
		t.Errorf("state = %+v, want %+v", gs, ws)
	}
	if gs.SelectedAnswer == nil || *gs.SelectedAnswer != 1 {
		t.Errorf("selected = %v, want 1", gs.SelectedAnswer)
	}
	if len(got.Questions) != 3 || got.Questions[2].Correct != 2 {
		t.Errorf("questions = %+v", got.Questions)
	}
}

func TestProgress_RejectsStaleRevision(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo("quizProgress")
	ctx := context.Background()

	if err := repo.Save(ctx, testRecord(5)); err != nil {
		t.Fatalf("save: %v", err)
	}

	older := testRecord(4)
	older.State.Score = 0
	err := repo.Save(ctx, older)
	if !errors.Is(err, quiz.ErrStaleRecord) {
		t.Fatalf("err = %v, want ErrStaleRecord", err)
	}
	if err := repo.Save(ctx, testRecord(5)); !errors.Is(err, quiz.ErrStaleRecord) {
		t.Errorf("equal revision: err = %v, want ErrStaleRecord", err)
	}

	got, _ := repo.Load(ctx)
	if got.Revision != 5 || got.State.Score != 1 {
		t.Errorf("stale write applied: %+v", got)
	}

	if err := repo.Save(ctx, testRecord(6)); err != nil {
		t.Errorf("newer revision rejected: %v", err)
	}
}

func TestProgress_KeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ProgressRepo("a").Save(ctx, testRecord(1)); err != nil {
		t.Fatalf("save a: %v", err)
	}
	rec, err := s.ProgressRepo("b").Load(ctx)
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if rec != nil {
		t.Error("key b should be empty")
	}
}

func TestProgress_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo("quizProgress")
	ctx := context.Background()

	if err := repo.Save(ctx, testRecord(1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rec, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Error("expected nil after clear")
	}

	// A cleared key accepts a fresh quiz starting at revision 1.
	if err := repo.Save(ctx, testRecord(1)); err != nil {
		t.Errorf("save after clear: %v", err)
	}
}

func TestProgress_MalformedIsDiscarded(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		`INSERT INTO progress (key, revision, data, updated_at) VALUES (?, ?, ?, ?)`,
		"quizProgress", 7, "{not json", "2026-01-01 00:00:00",
	)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	repo := s.ProgressRepo("quizProgress")
	c := quiz.NewController(repo, quiz.DefaultConfig())
	rec, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Error("malformed record should load as nil")
	}

	// The unreadable row must not block saves from a new quiz.
	if err := c.StartFresh(ctx, testRecord(0).Questions); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Select(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := c.Confirm(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	saved, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved == nil || saved.Revision != 2 || saved.State.Score != 1 {
		t.Errorf("saved = %+v, want revision 2 with score 1", saved)
	}
}

func TestProgress_DrivesController(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProgressRepo("quizProgress")

	qs := testRecord(0).Questions
	c := quiz.NewController(repo, quiz.DefaultConfig())
	if err := c.StartFresh(ctx, qs); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Select(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := c.Confirm(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := c.Continue(ctx); err != nil {
		t.Fatalf("continue: %v", err)
	}

	resumed := quiz.NewController(repo, quiz.DefaultConfig())
	rec, err := resumed.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec == nil {
		t.Fatal("expected resumable record")
	}
	if err := resumed.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := resumed.State(); got.CurrentQuestionIndex != 1 || got.Score != 1 {
		t.Errorf("resumed state = %+v", got)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestEvents_SharedSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStart, Total: 5}); err != nil {
		t.Fatalf("session start: %v", err)
	}
	if err := repo.AppendHintEvent(ctx, HintEventData{SessionID: "s1", Query: "Q1", VideoID: "v", Start: 1, End: 4, Source: "quiz", Success: true}); err != nil {
		t.Fatalf("hint: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", QuestionText: "Q1", Selected: 2, CorrectIndex: 2, Correct: true, HeartsRemaining: 3}); err != nil {
		t.Fatalf("answer: %v", err)
	}

	var hintSeq, answerSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM hint_events").Scan(&hintSeq); err != nil {
		t.Fatalf("hint seq: %v", err)
	}
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatalf("answer seq: %v", err)
	}
	if hintSeq != 2 || answerSeq != 3 {
		t.Errorf("sequences = (%d, %d), want (2, 3)", hintSeq, answerSeq)
	}
}

func TestRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, id := range []string{"s1", "s2", "s3"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: SessionStart, Total: 5}); err != nil {
			t.Fatalf("start %s: %v", id, err)
		}
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: SessionEnd, VideoID: "Linda", Total: 5,
			Score: i + 2, CorrectAnswers: i + 2, IncorrectAnswers: 3 - i, HeartsRemaining: i,
		})
		if err != nil {
			t.Fatalf("end %s: %v", id, err)
		}
	}

	got, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "s3" || got[1].SessionID != "s2" {
		t.Errorf("order = %s, %s; want s3, s2", got[0].SessionID, got[1].SessionID)
	}
	if got[0].Score != 4 || got[0].VideoID != "Linda" {
		t.Errorf("s3 = %+v", got[0])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not populated")
	}
}

func TestRecentRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{Service: "backend", Operation: "/quiz", StatusCode: 200, LatencyMs: 120, Success: true},
		{Service: "llm", Operation: "quiz-generate", Model: "gemini/gemini-2.5-flash", InputTokens: 900, OutputTokens: 300, LatencyMs: 2400, Success: true},
		{Service: "backend", Operation: "/hint-query", StatusCode: 502, LatencyMs: 40, ErrorMessage: "bad gateway"},
	}
	for _, e := range events {
		if err := repo.AppendRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.RecentRequests(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Operation != "/hint-query" || got[0].Success || got[0].StatusCode != 502 {
		t.Errorf("newest = %+v", got[0])
	}
	if got[1].InputTokens != 900 || got[1].Model != "gemini/gemini-2.5-flash" {
		t.Errorf("llm event = %+v", got[1])
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("RECALL_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RECALL_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "recall", "recall.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
