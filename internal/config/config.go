// Package config loads recall's runtime settings from RECALL_* environment
// variables and sets up the diagnostic log.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/quiz"
)

// Quiz sources.
const (
	SourceBackend = "backend"
	SourceLLM     = "llm"
)

// Defaults.
const (
	DefaultBackendURL  = "http://127.0.0.1:5001"
	DefaultHTTPTimeout = 20 * time.Second
	DefaultProgressKey = "quizProgress"
	DefaultVideoID     = "68cecac9ca672ec899e15fe7"
	DefaultIndexID     = "visits"
)

// Config holds everything recall reads from the environment.
type Config struct {
	BackendURL  string
	HSP         string
	MediaURL    string
	HTTPTimeout time.Duration

	// VideoID and IndexID select the visit whose transcript is quizzed.
	VideoID string
	IndexID string

	// AskVideoID is sent as video_id on text queries. Empty means VideoID.
	AskVideoID string

	ProgressKey string
	QuizSource  string
	Quiz        quiz.Config

	DBPath  string
	LogFile string
	Debug   bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BackendURL:  DefaultBackendURL,
		MediaURL:    clip.DefaultMediaBase,
		HTTPTimeout: DefaultHTTPTimeout,
		VideoID:     DefaultVideoID,
		IndexID:     DefaultIndexID,
		ProgressKey: DefaultProgressKey,
		QuizSource:  SourceBackend,
		Quiz:        quiz.DefaultConfig(),
	}
}

// FromEnv builds a Config from the environment, falling back to defaults
// for unset values. Malformed values are reported rather than ignored.
func FromEnv() (Config, error) {
	cfg := Default()

	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	str("RECALL_BACKEND_URL", &cfg.BackendURL)
	str("RECALL_HSP", &cfg.HSP)
	str("RECALL_MEDIA_URL", &cfg.MediaURL)
	str("RECALL_VIDEO_ID", &cfg.VideoID)
	str("RECALL_INDEX_ID", &cfg.IndexID)
	str("RECALL_ASK_VIDEO_ID", &cfg.AskVideoID)
	str("RECALL_PROGRESS_KEY", &cfg.ProgressKey)
	str("RECALL_QUIZ_SOURCE", &cfg.QuizSource)
	str("RECALL_DB", &cfg.DBPath)
	str("RECALL_LOG_FILE", &cfg.LogFile)

	var errs []string
	dur := func(name string, dst *time.Duration) {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", name, v))
			return
		}
		*dst = d
	}
	boolean := func(name string, dst *bool) {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid boolean %q", name, v))
			return
		}
		*dst = b
	}
	dur("RECALL_HTTP_TIMEOUT", &cfg.HTTPTimeout)
	dur("RECALL_FEEDBACK_DELAY", &cfg.Quiz.FeedbackDelay)
	boolean("RECALL_END_ON_NO_HEARTS", &cfg.Quiz.EndOnNoHearts)
	boolean("RECALL_DEBUG", &cfg.Debug)

	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, cfg.Validate()
}

// Validate checks values that flags can also set.
func (c Config) Validate() error {
	switch c.QuizSource {
	case SourceBackend, SourceLLM:
	default:
		return fmt.Errorf("unknown quiz source %q (want %q or %q)", c.QuizSource, SourceBackend, SourceLLM)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if c.VideoID == "" || c.IndexID == "" {
		return fmt.Errorf("video and index IDs are required")
	}
	if c.ProgressKey == "" {
		return fmt.Errorf("progress key is required")
	}
	return nil
}

// TextQueryVideoID returns the video_id sent with text queries.
func (c Config) TextQueryVideoID() string {
	if c.AskVideoID != "" {
		return c.AskVideoID
	}
	return c.VideoID
}

// DefaultLogPath resolves the diagnostic log location:
// $XDG_STATE_HOME/recall/recall.log, else ~/.local/state/recall/recall.log.
func DefaultLogPath() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "recall", "recall.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "recall", "recall.log"), nil
}
