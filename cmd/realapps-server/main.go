// Package main provides the standalone realapps HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/realapps-go/internal/config"
	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/raphaelgruber/realapps-go/internal/provider"
	"github.com/raphaelgruber/realapps-go/internal/server"
	"github.com/raphaelgruber/realapps-go/internal/storage"
)

const version = "0.1.0"

func main() {
	port := flag.String("port", "", "port to listen on (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; bail through stderr.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("realapps-server starting",
		"version", version,
		"port", cfg.Port,
		"data_dir", cfg.DataDir,
		"default_provider", cfg.DefaultProvider,
		"default_model", cfg.DefaultModel)

	collector := metrics.NewCollector()

	store, err := storage.New(cfg.DataDir, logger, collector)
	if err != nil {
		logger.Error("failed to init storage", "error", err)
		os.Exit(1)
	}

	chat := provider.NewClient(cfg.ProviderTimeout, logger)
	srv := server.New(cfg, store, chat, collector, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
