package cmd

import (
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a spoken or typed question about your visit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, startAsk)
	},
}
