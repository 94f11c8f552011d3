package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var (
	searchJSON  bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search todo titles",
	Long: `Searches todo titles with a full-text query, best match first.

Query syntax:
  milk            titles containing the term
  "buy milk"      exact phrase
  learn*          wildcard
  +buy -bread     required and excluded terms`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		todos, err := api.Search(cmd.Context(), query, searchLimit)
		if err != nil {
			return apiError(searchJSON, err)
		}

		if searchJSON {
			return output.SuccessMultiple(todos)
		}

		if len(todos) == 0 {
			fmt.Fprintln(out, ui.Muted.Render("No matching todos"))
			return nil
		}

		fmt.Fprint(out, ui.RenderTable(todos))
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (0 uses the server default)")
	rootCmd.AddCommand(searchCmd)
}
