package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/recall/internal/config"
	"github.com/abhisek/recall/internal/store"
	"github.com/spf13/cobra"
)

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	for _, name := range []string{"db", "backend", "video", "index", "source"} {
		c.Flags().String(name, "", "")
	}
	c.Flags().Bool("debug", false, "")
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return c
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RECALL_VIDEO_ID", "env-video")
	t.Setenv("RECALL_INDEX_ID", "env-index")
	t.Setenv("RECALL_BACKEND_URL", "http://env:5001")

	cfg, err := loadConfig(testCommand(t, "--video", "flag-video", "--source", "llm", "--debug"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.VideoID != "flag-video" {
		t.Errorf("VideoID = %q, want flag-video", cfg.VideoID)
	}
	if cfg.IndexID != "env-index" {
		t.Errorf("IndexID = %q, want env-index", cfg.IndexID)
	}
	if cfg.BackendURL != "http://env:5001" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.QuizSource != config.SourceLLM || !cfg.Debug {
		t.Errorf("source = %q debug = %v", cfg.QuizSource, cfg.Debug)
	}
}

func TestLoadConfig_RejectsUnknownSource(t *testing.T) {
	if _, err := loadConfig(testCommand(t, "--source", "carrier-pigeon")); err == nil {
		t.Error("expected an error for an unknown quiz source")
	}
}

func TestQuizSource_LLMNeedsProvider(t *testing.T) {
	cfg := config.Default()
	cfg.QuizSource = config.SourceLLM
	if _, err := quizSource(cfg, nil, nil); err == nil {
		t.Error("expected an error without a provider")
	}
	cfg.QuizSource = config.SourceBackend
	if _, err := quizSource(cfg, nil, nil); err != nil {
		t.Errorf("backend source: %v", err)
	}
}

func TestPrintSessions(t *testing.T) {
	var buf bytes.Buffer
	printSessions(&buf, nil)
	if !strings.Contains(buf.String(), "No finished quizzes") {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	printSessions(&buf, []store.SessionSummary{{
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local),
		SessionEventData: store.SessionEventData{
			Total: 5, Score: 2, IncorrectAnswers: 3, HeartsRemaining: 0, EndedEarly: true,
		},
	}})
	out := buf.String()
	for _, want := range []string{"2026-03-01 10:00:00", "2/5", "ended early"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintRequests(t *testing.T) {
	var buf bytes.Buffer
	printRequests(&buf, []store.RequestEvent{
		{Sequence: 7, RequestEventData: store.RequestEventData{
			Service: "backend", Operation: "/hint-query", StatusCode: 502, ErrorMessage: "bad gateway",
		}},
		{Sequence: 8, RequestEventData: store.RequestEventData{
			Service: "llm", Operation: "answer", Model: "gpt-4o-mini", Success: true,
		}},
	})
	out := buf.String()
	for _, want := range []string{"/hint-query", "502", "✗ bad gateway", "gpt-4o-mini", "✓"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
