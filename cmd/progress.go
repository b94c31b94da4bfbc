package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or clear the saved quiz progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved quiz progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.ProgressRepo(cfg.ProgressKey).Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		out := cmd.OutOrStdout()
		if rec == nil {
			fmt.Fprintln(out, "No saved progress.")
			return nil
		}

		s := rec.State
		total := len(rec.Questions)
		fmt.Fprintf(out, "Saved:     %s\n", rec.SavedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Question:  %d of %d\n", min(s.CurrentQuestionIndex+1, total), total)
		fmt.Fprintf(out, "Score:     %d\n", s.Score)
		fmt.Fprintf(out, "Correct:   %d\n", s.CorrectAnswers)
		fmt.Fprintf(out, "Incorrect: %d\n", s.IncorrectAnswers)
		fmt.Fprintf(out, "Hints:     %d\n", s.HintsUsed)
		fmt.Fprintf(out, "Hearts:    %d\n", s.HeartsRemaining)
		if !rec.Resumable() {
			fmt.Fprintln(out, "\nThis record cannot be resumed and will be discarded on the next run.")
		}
		return nil
	},
}

var progressClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the saved quiz progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProgressRepo(cfg.ProgressKey).Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved progress cleared.")
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressClearCmd)
}
