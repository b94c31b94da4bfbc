package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/recall/internal/config"
	"github.com/abhisek/recall/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Quiz yourself on your telehealth visit",
	Long:  "Recall is a terminal quiz about what your clinician said, with voice questions and clip hints from the visit recording.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, startQuiz)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides RECALL_DB env var)")
	pf.String("backend", "", "Backend base URL (overrides RECALL_BACKEND_URL)")
	pf.String("video", "", "Video ID of the visit recording (overrides RECALL_VIDEO_ID)")
	pf.String("index", "", "Index ID holding the visit (overrides RECALL_INDEX_ID)")
	pf.String("source", "", `Quiz source: "backend" or "llm" (overrides RECALL_QUIZ_SOURCE)`)
	pf.Bool("debug", false, "Write debug-level entries to the log file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(devserverCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads RECALL_* variables and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	flags := []struct {
		name string
		dst  *string
	}{
		{"backend", &cfg.BackendURL},
		{"video", &cfg.VideoID},
		{"index", &cfg.IndexID},
		{"source", &cfg.QuizSource},
		{"db", &cfg.DBPath},
	}
	for _, f := range flags {
		if v, _ := cmd.Flags().GetString(f.name); v != "" {
			*f.dst = v
		}
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database path: --db or RECALL_DB first, then
// the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database it names.
func openStore(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, st, nil
}

// setupLogging sends slog output to the log file. A failure leaves logging
// on stderr and is reported once.
func setupLogging(cmd *cobra.Command, cfg config.Config) io.Closer {
	closer, err := config.SetupLogging(cfg.LogFile, cfg.Debug)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Logging disabled:", err)
		return io.NopCloser(nil)
	}
	return closer
}
