package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := api.Get(cmd.Context(), args[0])
		if err != nil {
			return apiError(showJSON, err)
		}

		if showJSON {
			return output.Success(t, "")
		}

		fmt.Fprint(out, ui.RenderDetail(*t))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}
