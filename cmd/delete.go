package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var (
	forceDelete bool
	deleteJSON  bool
)

// confirmDelete asks the user before deleting. Tests replace it.
var confirmDelete = func(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	return confirm, err
}

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errNeedsConfirmation = errors.New("refusing to delete without confirmation (use -f to skip)")

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Long:    `Deletes a todo after confirmation (use -f to skip confirmation).`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		// JSON implies force (no prompts for machines)
		if !forceDelete && !deleteJSON {
			t, err := api.Get(cmd.Context(), id)
			if err != nil {
				return apiError(false, err)
			}

			if !isInteractive() {
				return errNeedsConfirmation
			}

			confirm, err := confirmDelete(fmt.Sprintf("Delete '%s' (%s)?", t.Title, t.ID))
			if err != nil {
				return err
			}
			if !confirm {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}
		}

		t, err := api.Delete(cmd.Context(), id)
		if err != nil {
			return apiError(deleteJSON, err)
		}

		if deleteJSON {
			return output.Success(t, "Todo deleted")
		}

		fmt.Fprintf(out, "Deleted %s %s\n", ui.ID.Render(t.ID), t.Title)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteJSON, "json", false, "Output as JSON (implies --force)")
	rootCmd.AddCommand(deleteCmd)
}
