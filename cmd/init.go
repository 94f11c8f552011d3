package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/todos/internal/config"
	"github.com/hmans/todos/internal/output"
)

var (
	initJSON  bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Writes todos.yaml (or the file named by --config) with every setting at its
default value, ready for editing. An existing file is left alone unless --force
is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return cmdError(initJSON, output.ErrFileError, "%s already exists (use --force to overwrite)", configPath)
		}

		if err := config.Default().Save(configPath); err != nil {
			return cmdError(initJSON, output.ErrFileError, "failed to write config: %v", err)
		}

		if initJSON {
			return output.SuccessMessage("Wrote " + configPath)
		}

		fmt.Fprintf(out, "Wrote %s\n", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initJSON, "json", false, "Output as JSON")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
