package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/recall/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent quiz sessions or outbound requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		requests, _ := cmd.Flags().GetBool("requests")

		_, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		out := cmd.OutOrStdout()
		if requests {
			events, err := repo.RecentRequests(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("query requests: %w", err)
			}
			printRequests(out, events)
			return nil
		}

		sessions, err := repo.RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		printSessions(out, sessions)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().Bool("requests", false, "Show backend and LLM requests instead of sessions")
}

func printSessions(w io.Writer, sessions []store.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No finished quizzes yet.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-8s  %-7s  %-5s  %-6s  %s\n",
		"Finished", "Score", "Wrong", "Hints", "Hearts", "")
	fmt.Fprintln(w, strings.Repeat("─", 64))
	for _, s := range sessions {
		note := ""
		if s.EndedEarly {
			note = "ended early"
		}
		fmt.Fprintf(w, "%-19s  %-8s  %-7d  %-5d  %-6d  %s\n",
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", s.Score, s.Total),
			s.IncorrectAnswers,
			s.HintsUsed,
			s.HeartsRemaining,
			note,
		)
	}
}

func printRequests(w io.Writer, events []store.RequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No requests recorded yet.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-7s  %-14s  %-24s  %-6s  %-7s  %s\n",
		"ID", "Timestamp", "Service", "Operation", "Model", "Status", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗ " + e.ErrorMessage
		}
		model := e.Model
		if len(model) > 24 {
			model = model[:24]
		}
		status := "-"
		if e.StatusCode != 0 {
			status = fmt.Sprint(e.StatusCode)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-7s  %-14s  %-24s  %-6s  %-7d  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Service,
			e.Operation,
			model,
			status,
			e.LatencyMs,
			ok,
		)
	}
}
