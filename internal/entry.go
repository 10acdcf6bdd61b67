// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/saka/internal/api"
	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/mcpserver"
	"github.com/starford/saka/internal/sse"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// newLogger installs a JSON logger whose level can change at runtime.
func newLogger(w io.Writer, level slog.Level) (*slog.Logger, *slog.LevelVar) {
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger, lvl
}

// NewService builds the date service for cfg's clock.
func NewService(cfg *Config) (*dateservice.Service, error) {
	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return dateservice.NewService(loc), nil
}

func writeStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// newHandler assembles the root router: health checks and the API under /api.
func newHandler(cfg *Config, svc *dateservice.Service, events http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", writeStatus)
	r.Get("/health/ready", writeStatus)

	r.Mount("/api", api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, events))
	return r
}

// applyReload pushes the hot-reloadable settings into the running components.
func applyReload(cfg *Config, lvl *slog.LevelVar, svc *dateservice.Service, logger *slog.Logger) {
	lvl.Set(cfg.App.LogLevel)
	loc, err := cfg.Clock.Location()
	if err != nil {
		logger.Warn("reload: timezone", slog.String("error", err.Error()))
		return
	}
	svc.SetLocation(loc)
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	out := app.logOutput
	if out == nil {
		out = os.Stdout
	}
	logger, lvl := newLogger(out, cfg.App.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("timezone", cfg.Clock.Timezone),
		slog.Duration("poll_interval", cfg.Events.PollInterval),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	broker := sse.NewBroker(cfg.Events.Keepalive)
	defer broker.Close()

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           newHandler(cfg, svc, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Announce date changes to SSE subscribers.
	g.Go(func() error {
		svc.WatchRollover(gCtx, cfg.Events.PollInterval, logger, broker.PublishRollover)
		return nil
	})

	if app.configPath != "" {
		g.Go(func() error {
			err := WatchConfig(gCtx, app.configPath, logger, func(next *Config) {
				applyReload(next, lvl, svc, logger)
			})
			if err != nil {
				// Serving continues without hot reload.
				logger.Warn("config watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Shut down once a signal arrives or any component fails.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr unless
// redirected, since stdout carries the protocol.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	out := app.logOutput
	if out == nil {
		out = os.Stderr
	}
	logger, _ := newLogger(out, app.config.App.LogLevel)

	svc, err := NewService(app.config)
	if err != nil {
		return err
	}

	logger.Info("MCP server starting", slog.String("timezone", app.config.Clock.Timezone))
	if err := mcpserver.New(svc, app.version).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
