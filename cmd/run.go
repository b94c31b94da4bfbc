package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/recall/internal/app"
	"github.com/abhisek/recall/internal/backend"
	"github.com/abhisek/recall/internal/config"
	"github.com/abhisek/recall/internal/llm"
	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/quizgen"
	quizscreen "github.com/abhisek/recall/internal/screens/quiz"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/voice"
	"github.com/spf13/cobra"
)

const (
	startQuiz = app.StartQuiz
	startAsk  = app.StartAsk
)

// runApp opens the store, builds dependencies, and launches the TUI on the
// start screen.
func runApp(cmd *cobra.Command, start string) error {
	ctx := cmd.Context()

	cfg, st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	defer setupLogging(cmd, cfg).Close()

	eventRepo := st.EventRepo()
	svc, err := newBackend(cfg, eventRepo)
	if err != nil {
		return err
	}

	provider := newProvider(ctx, cmd, eventRepo)
	source, err := quizSource(cfg, svc, provider)
	if err != nil {
		return err
	}

	rec, recErr := voice.Detect(llm.ConfigFromEnv().OpenAI)
	if recErr != nil {
		slog.Info("voice input unavailable", "err", recErr)
	}

	opts := app.Options{
		Start:         start,
		Controller:    quiz.NewController(st.ProgressRepo(cfg.ProgressKey), cfg.Quiz),
		Source:        source,
		Backend:       svc,
		Answerer:      quizgen.Synthesizer{Provider: provider},
		Events:        eventRepo,
		Recognizer:    rec,
		RecognizerErr: recErr,
		VideoID:       cfg.VideoID,
		IndexID:       cfg.IndexID,
		AskVideoID:    cfg.TextQueryVideoID(),
		MediaBase:     cfg.MediaURL,
	}
	slog.Info("starting recall", "start", start, "backend", cfg.BackendURL,
		"video", cfg.VideoID, "index", cfg.IndexID, "source", cfg.QuizSource, "llm", provider != nil)
	return app.Run(opts)
}

// newBackend returns a backend client that records every call.
func newBackend(cfg config.Config, events store.EventRepo) (backend.Service, error) {
	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL,
		HSP:     cfg.HSP,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}
	return backend.WithLogging(client, events), nil
}

// newProvider returns the configured LLM provider, or nil when none is
// set up. The app works without one.
func newProvider(ctx context.Context, cmd *cobra.Command, events store.EventRepo) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if !cfg.Configured() {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil
		}
		cfg = discovered
	}
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		return nil
	}
	return provider
}

// quizSource picks where questions come from.
func quizSource(cfg config.Config, svc backend.Service, provider llm.Provider) (quizscreen.QuestionSource, error) {
	if cfg.QuizSource != config.SourceLLM {
		return backend.Source{Service: svc}, nil
	}
	if provider == nil {
		return nil, fmt.Errorf("quiz source %q needs an LLM provider; set RECALL_LLM_PROVIDER and its API key", config.SourceLLM)
	}
	return quizgen.Source{Backend: svc, Gen: quizgen.New(provider, quizgen.DefaultConfig())}, nil
}
