package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/todo"
	"github.com/hmans/todos/internal/ui"
)

var (
	listJSON      bool
	listQuiet     bool
	listOpen      bool
	listCompleted bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all todos",
	Long:    `Lists all todos in the order they were added.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		todos, err := api.List(cmd.Context())
		if err != nil {
			return apiError(listJSON, err)
		}

		todos = filterTodos(todos, listOpen, listCompleted)

		if listJSON {
			return output.SuccessMultiple(todos)
		}

		if listQuiet {
			for _, t := range todos {
				fmt.Fprintln(out, t.ID)
			}
			return nil
		}

		if len(todos) == 0 {
			fmt.Fprintln(out, ui.Muted.Render("No todos found. Add one with: todos add <title>"))
			return nil
		}

		fmt.Fprint(out, ui.RenderTable(todos))
		return nil
	},
}

// filterTodos keeps only open or only completed todos. With neither flag set, all are kept.
func filterTodos(todos []todo.Todo, open, completed bool) []todo.Todo {
	if open == completed {
		return todos
	}

	var filtered []todo.Todo
	for _, t := range todos {
		if t.IsCompleted == completed {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only output IDs (one per line)")
	listCmd.Flags().BoolVar(&listOpen, "open", false, "Only show todos that are not completed")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "Only show completed todos")
	listCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	listCmd.MarkFlagsMutuallyExclusive("open", "completed")
	rootCmd.AddCommand(listCmd)
}
