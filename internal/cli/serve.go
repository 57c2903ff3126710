package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/realapps-go/internal/config"
	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/raphaelgruber/realapps-go/internal/provider"
	"github.com/raphaelgruber/realapps-go/internal/server"
	"github.com/raphaelgruber/realapps-go/internal/storage"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the realapps HTTP server.

Configuration comes from the environment (REALAPPS_*) and an optional
YAML file pointed to by REALAPPS_CONFIG. The --port flag overrides both.

Examples:
  realapps serve
  realapps serve --port 8080
  REALAPPS_DATA_DIR=/var/lib/realapps realapps serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("realapps starting",
		"version", Version,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"default_provider", cfg.DefaultProvider)

	collector := metrics.NewCollector()

	store, err := storage.New(cfg.DataDir, logger, collector)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	chat := provider.NewClient(cfg.ProviderTimeout, logger)
	srv := server.New(cfg, store, chat, collector, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
