// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/cache"
	"github.com/rubms01/ai-restaurant/internal/config"
	"github.com/rubms01/ai-restaurant/internal/database"
	"github.com/rubms01/ai-restaurant/internal/handlers"
	"github.com/rubms01/ai-restaurant/internal/middleware"
	"github.com/rubms01/ai-restaurant/internal/router"
	"github.com/rubms01/ai-restaurant/internal/storage"
	"github.com/rubms01/ai-restaurant/internal/store"
)

// shutdownTimeout is how long active requests get to finish on SIGTERM.
const shutdownTimeout = 30 * time.Second

func serveCmd(cfg *config.Config) *cobra.Command {
	var skipMigrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, !skipMigrate)
		},
	}
	c.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on start")
	return c
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Valkey is optional in development; the public API then reads straight
	// from PostgreSQL.
	var responseCache *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	switch {
	case err == nil:
		defer valkeyClient.Close()
		responseCache = cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
	case cfg.IsDev():
		slog.Warn("valkey not reachable, response cache disabled", "error", err)
	default:
		return fmt.Errorf("connect valkey: %w", err)
	}

	objects, err := objectStore(cfg)
	if err != nil {
		return err
	}

	stores := store.New(db)
	registry := admin.Default()
	adminHandlers := handlers.NewAdmin(registry, stores, objects, responseCache)
	publicHandlers := handlers.NewPublic(stores, objects, responseCache)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.New(registry, adminHandlers, publicHandlers, router.Options{
			AdminTokenHash: cfg.AdminTokenHash,
			Limiter:        limiter,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

// objectStore connects to S3 when configured. A nil result keeps the
// handlers' ObjectStore interface nil, which disables uploads.
func objectStore(cfg *config.Config) (handlers.ObjectStore, error) {
	if !cfg.StorageEnabled() {
		slog.Warn("s3 storage not configured, image uploads disabled")
		return nil, nil
	}
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3BucketPublic, cfg.S3PublicURL)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	if client == nil {
		return nil, nil
	}
	slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3BucketPublic)
	return client, nil
}
