package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive TUI",
	Long:  `Opens an interactive terminal user interface for browsing and managing the todos on a running server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), api)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
