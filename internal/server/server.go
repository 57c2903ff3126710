// Package server provides the HTTP API: subject catalog lookups, the LLM
// chat proxy, and per-user API key and chat history management.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/raphaelgruber/realapps-go/internal/config"
	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/raphaelgruber/realapps-go/internal/provider"
	"github.com/raphaelgruber/realapps-go/internal/storage"
)

// ChatCompleter forwards one exchange to an LLM provider. Satisfied by
// *provider.Client; stubbed in tests.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req provider.ChatRequest) (*provider.ChatResponse, error)
}

// Server wraps the HTTP server with its dependencies and lifecycle.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New assembles the route table and the underlying http.Server.
func New(cfg config.Config, store *storage.Store, chat ChatCompleter, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	h := &handler{
		store:           store,
		chat:            chat,
		collector:       collector,
		logger:          logger,
		defaultProvider: cfg.DefaultProvider,
		defaultModel:    cfg.DefaultModel,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /health", h.health)

	mux.HandleFunc("GET /api/subjects", h.subjects)
	mux.HandleFunc("GET /api/applications/{subject}", h.applications)

	mux.HandleFunc("POST /api/chat", h.chatCompletion)

	mux.HandleFunc("POST /api/keys", h.saveAPIKey)
	mux.HandleFunc("GET /api/keys", h.listAPIKeys)
	mux.HandleFunc("DELETE /api/keys/{provider}", h.deleteAPIKey)

	mux.HandleFunc("POST /api/history", h.saveHistory)
	mux.HandleFunc("GET /api/history", h.listHistory)
	mux.HandleFunc("GET /api/history/{id}", h.getConversation)
	mux.HandleFunc("DELETE /api/history/{id}", h.deleteConversation)
	mux.HandleFunc("DELETE /api/history", h.clearHistory)

	mux.HandleFunc("GET /api/usage", h.usage)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      RequestLogger(logger, collector)(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: cfg.ProviderTimeout + 10*time.Second, // long for LLM responses
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the fully wired route handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
