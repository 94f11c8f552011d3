package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var addJSON bool

var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"a", "new"},
	Short:   "Add a new todo",
	Long: `Adds a new, incomplete todo. All arguments are joined into the title.

Examples:
  todos add Buy milk
  todos add "Learn GraphQL"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")

		t, err := api.Add(cmd.Context(), title)
		if err != nil {
			return apiError(addJSON, err)
		}

		if addJSON {
			return output.Success(t, "Todo added")
		}

		fmt.Fprintf(out, "Added %s %s\n", ui.ID.Render(t.ID), t.Title)
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(addCmd)
}
