// Command vgserve runs the Virtual Graph core as a standalone read-only
// HTTP query service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/virtgraph/vgcore/internal/api"
	"github.com/virtgraph/vgcore/internal/config"
	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/safety"
)

// Build-time variables set via ldflags.
var (
	version = "0.1.0"
	commit  = ""
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vgserve: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbconn.NewPool(ctx, cfg.DatabaseURL.Value(), poolConfig(cfg))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	limits := safety.Limits{
		MaxDepth:         cfg.MaxDepth,
		MaxNodes:         cfg.MaxNodes,
		StatementTimeout: cfg.StatementTimeout,
	}

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Limits:      limits,
		CORSOrigins: cfg.CORSOrigins,
		Version:     versionString(),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.WithField("addr", cfg.Addr()).Info("vgserve listening")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}

		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("vgserve stopped")

	return nil
}

func poolConfig(cfg *config.Config) dbconn.Config {
	pc := dbconn.DefaultConfig()
	pc.StatementTimeout = cfg.StatementTimeout

	return pc
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}

	log.SetLevel(parsed)

	return log
}

func versionString() string {
	if commit != "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}

	return version
}
