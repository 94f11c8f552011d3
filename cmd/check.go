package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/client"
	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var checkJSON bool

type checkResult struct {
	Success     bool   `json:"success"`
	Config      string `json:"config"`
	Endpoint    string `json:"endpoint"`
	ServerError string `json:"server_error,omitempty"`
	Todos       int    `json:"todos"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and server connectivity",
	Long: `Checks that the configuration is valid and that the GraphQL server at the
configured endpoint answers queries.

Exits non-zero if the server cannot be reached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// An invalid config never gets this far: the root command validates it.
		result := checkResult{
			Success:  true,
			Config:   configPath,
			Endpoint: api.Endpoint(),
		}

		todos, err := api.List(cmd.Context())
		if err != nil {
			result.Success = false
			result.ServerError = client.Message(err)
		} else {
			result.Todos = len(todos)
		}

		if checkJSON {
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			if !result.Success {
				return output.ErrReported
			}
			return nil
		}

		ok := ui.Success.Render("✓")
		fmt.Fprintln(out, ui.Bold.Render("Configuration"))
		fmt.Fprintf(out, "  %s Settings valid (%s)\n", ok, configPath)
		fmt.Fprintf(out, "  %s Id strategy '%s'\n", ok, cfg.Store.IDStrategy)
		fmt.Fprintf(out, "  %s Log level '%s'\n", ok, cfg.Log.Level)

		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Bold.Render("Server"))
		if !result.Success {
			fmt.Fprintf(out, "  %s %s unreachable: %s\n", ui.Danger.Render("✗"), result.Endpoint, result.ServerError)
			fmt.Fprintln(out)
			return fmt.Errorf("server check failed")
		}
		fmt.Fprintf(out, "  %s %s answers (%d todos)\n", ok, result.Endpoint, result.Todos)
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.Success.Render("All checks passed"))
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(checkCmd)
}
