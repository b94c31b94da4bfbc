package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/llm"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/voice"
	"github.com/spf13/cobra"
)

var hintCmd = &cobra.Command{
	Use:   "hint [question...]",
	Short: "Find the part of the visit recording that answers a question",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetBool("listen")
		play, _ := cmd.Flags().GetBool("play")
		out := cmd.OutOrStdout()

		ctx := cmd.Context()

		query := strings.TrimSpace(strings.Join(args, " "))
		if listen {
			rec, err := voice.Detect(llm.ConfigFromEnv().OpenAI)
			if err != nil {
				return fmt.Errorf("voice input: %w", err)
			}
			fmt.Fprintf(out, "Listening for up to %s… press Ctrl+C to cancel.\n", voice.DefaultTimeout)
			query, err = voice.Capture(ctx, rec, voice.DefaultTimeout, func(text string) {
				fmt.Fprintf(out, "\r\033[K%s", text)
			})
			fmt.Fprintln(out)
			if err != nil {
				return errors.New(voice.StatusMessage(err))
			}
			fmt.Fprintf(out, "You asked: %s\n", query)
		}
		if query == "" {
			return fmt.Errorf("a question is required (or use --listen)")
		}

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

		hint, err := svc.HintQuery(ctx, query)
		if err == nil {
			err = clip.FromHint(*hint).Validate()
		}

		ev := store.HintEventData{Query: query, Source: "cli", Success: err == nil}
		if hint != nil {
			ev.VideoID, ev.Start, ev.End = hint.VideoID, hint.Start, hint.End
		}
		if err != nil {
			ev.ErrorMessage = err.Error()
		}
		if logErr := eventRepo.AppendHintEvent(ctx, ev); logErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Could not record hint:", logErr)
		}
		if err != nil {
			return fmt.Errorf("hint query: %w", err)
		}

		w := clip.FromHint(*hint)
		mediaURL := clip.MediaURL(cfg.MediaURL, hint.VideoID)
		fmt.Fprintf(out, "Clip:  %s – %s (%s)\n", clip.FormatTime(w.Start), clip.FormatTime(w.End), clip.FormatDuration(w.Duration()))
		fmt.Fprintf(out, "Video: %s\n", mediaURL)

		if !play {
			return nil
		}
		player, err := clip.ExternalCommand(mediaURL, w)
		if err != nil {
			return err
		}
		player.Stdout, player.Stderr = os.Stdout, os.Stderr
		return player.Run()
	},
}

func init() {
	hintCmd.Flags().Bool("listen", false, "Speak the question instead of typing it")
	hintCmd.Flags().Bool("play", false, "Play the clip with mpv or ffplay")
}
