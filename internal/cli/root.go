// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli defines the restaurant command line: the HTTP server and the
// database maintenance commands.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rubms01/ai-restaurant/internal/config"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:          "restaurant",
		Short:        "Restaurant directory admin and public API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["config"] == "skip" {
				setupLogger(os.Getenv("APP_ENV") != "production", os.Getenv("LOG_LEVEL"))
				return nil
			}
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			*cfg = *loaded
			setupLogger(cfg.IsDev(), cfg.LogLevel)
			return nil
		},
	}

	cfg = &config.Config{}
	cmd.AddCommand(
		serveCmd(cfg),
		migrateCmd(cfg),
		seedCmd(cfg),
		hashTokenCmd(),
	)
	return cmd
}

// setupLogger installs the process-wide logger: text in development, JSON
// otherwise.
func setupLogger(dev bool, level string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler
	if dev {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
