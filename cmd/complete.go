package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var completeJSON bool

var completeCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Mark a todo as completed",
	Long:    `Marks a todo as completed. Completing an already completed todo is not an error.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api.Complete(cmd.Context(), args[0])
		if err != nil {
			return apiError(completeJSON, err)
		}

		if completeJSON {
			return output.Success(t, "Todo completed")
		}

		fmt.Fprintf(out, "Completed %s %s\n", ui.ID.Render(t.ID), t.Title)
		return nil
	},
}

func init() {
	completeCmd.Flags().BoolVar(&completeJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(completeCmd)
}
