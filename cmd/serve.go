package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hmans/todos/internal/config"
	"github.com/hmans/todos/internal/logging"
	"github.com/hmans/todos/internal/server"
)

var (
	servePort    int
	serveHost    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (GET and POST)
  - GraphQL Playground at / (when server.playground is enabled)
  - Health check at /healthz
  - Prometheus metrics at /metrics (when metrics.enabled is set)

Todos live in memory and are lost when the server stops. While the server
runs, edits to the config file's log.level take effect immediately
(disable with --no-watch).

Examples:
  # Start server on the default port 4103
  todos serve

  # Start server on a custom port
  todos serve --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		srv, err := server.NewFromConfig(cfg, logger)
		if err != nil {
			return err
		}
		defer srv.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !serveNoWatch {
			if err := watchLogLevel(ctx); err != nil {
				return err
			}
		}

		return srv.Run(ctx)
	},
}

// watchLogLevel applies log.level changes from the config file. Without a
// config file there is nothing to watch.
func watchLogLevel(ctx context.Context) error {
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// An explicit --log-level wins over the file.
	if logLevel != "" {
		return nil
	}

	return config.Watch(ctx, configPath, logger, func(c *config.Config) {
		if err := logging.SetLevel(level, c.Log.Level); err != nil {
			logger.Warn("ignoring log level", zap.String("level", c.Log.Level), zap.Error(err))
			return
		}
		logger.Info("log level changed", zap.String("level", c.Log.Level))
	})
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (overrides server.host)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Do not reload log.level when the config file changes")
	rootCmd.AddCommand(serveCmd)
}
