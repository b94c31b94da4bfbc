package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/abhisek/recall/internal/config"
	"github.com/abhisek/recall/internal/fakebackend"
	"github.com/spf13/cobra"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve canned visit data over the backend API",
	Long: "Runs a local stand-in for the visit backend so the quiz, hints and questions work offline.\n" +
		"Point recall at it with --backend http://<addr>.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		hsp, _ := cmd.Flags().GetString("hsp")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		debug, _ := cmd.Flags().GetBool("debug")
		slog.SetDefault(config.NewLogger(cmd.ErrOrStderr(), debug))
		slog.Info("fixture backend listening", "addr", addr, "video", fakebackend.VideoID)
		fmt.Fprintf(cmd.OutOrStdout(), "Serving fixture backend on http://%s (Ctrl+C to stop)\n", addr)

		srv := fakebackend.New(fakebackend.Options{HSP: hsp})
		if err := srv.ListenAndServe(ctx, addr); err != nil && ctx.Err() == nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	devserverCmd.Flags().String("addr", "127.0.0.1:5001", "Address to listen on")
	devserverCmd.Flags().String("hsp", "", "Require this tenant label on quiz requests")
}
