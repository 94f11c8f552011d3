package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/todos/internal/client"
	"github.com/hmans/todos/internal/config"
	"github.com/hmans/todos/internal/logging"
	"github.com/hmans/todos/internal/output"
	"github.com/hmans/todos/internal/ui"
)

var (
	cfg    *config.Config
	logger *zap.Logger
	api    *client.Client

	// level controls logger and can be changed while the server runs.
	level = zap.NewAtomicLevel()

	// out receives human-readable command output.
	out io.Writer = os.Stdout
)

var (
	configPath string
	serverURL  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "An in-memory todo list with a GraphQL API",
	Long: `Todos keeps a list of todo items in memory and serves it over GraphQL.

Run 'todos serve' to start the server, then use the other commands (or any
GraphQL client) to list, add, complete, and delete todos.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if err := logging.SetLevel(level, cfg.Log.Level); err != nil {
			return err
		}
		logger, err = logging.NewWithLevel(level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		endpoint := cfg.Client.Endpoint
		if serverURL != "" {
			endpoint = serverURL
		}
		api = client.New(endpoint, cfg.Client.Timeout)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "GraphQL endpoint URL (overrides client.endpoint)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, output.ErrReported) {
			fmt.Fprintln(os.Stderr, ui.Danger.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
