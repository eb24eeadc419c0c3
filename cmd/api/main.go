// Package main is the entry point for the Finance Tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/tracker/config"
	"github.com/finance-tracker/tracker/internal/infra/broker"
	"github.com/finance-tracker/tracker/internal/infra/db"
	"github.com/finance-tracker/tracker/internal/infra/dependency"
)

const (
	shutdownTimeout     = 10 * time.Second
	maintenanceInterval = 10 * time.Minute
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting Finance Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	// Initialize redis connection
	rdb, err := broker.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	injector := dependency.NewInjector(cfg, database.DB(), rdb, database.HealthCheck, broker.HealthCheck(rdb))
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		maintain(gctx, injector, cfg.Session.IdleTimeout)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Closing sessions first ends open summary streams.
		if err := injector.Sessions.Shutdown(shutdownCtx); err != nil {
			slog.Error("Sessions did not close in time", "error", err)
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// maintain purges expired token revocations, stale rate limit entries and
// idle sessions until ctx is done.
func maintain(ctx context.Context, injector *dependency.Injector, sessionIdle time.Duration) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purged, err := injector.TokenRepository.PurgeExpired(ctx, now.UTC())
			if err != nil {
				slog.Warn("Failed to purge expired token revocations", "error", err)
			}
			removed := injector.LoginRateLimiter.Cleanup()
			idle := injector.Sessions.CloseIdle(now.Add(-sessionIdle))
			slog.Debug("Maintenance completed",
				"purged_revocations", purged,
				"rate_limit_entries_removed", removed,
				"idle_sessions_closed", idle,
				"open_sessions", injector.Sessions.Len(),
			)
		}
	}
}
