// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rubms01/ai-restaurant/internal/config"
	"github.com/rubms01/ai-restaurant/internal/database"
	"github.com/rubms01/ai-restaurant/internal/middleware"
)

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(cfg, func(db *sql.DB) error {
				if err := database.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				slog.Info("migrations applied")
				return nil
			})
		},
	}
}

func seedCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the development fixtures (no-op when restaurants exist)",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(cfg, func(db *sql.DB) error {
				if err := database.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				if err := database.Seed(db); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				slog.Info("seed complete")
				return nil
			})
		},
	}
}

func hashTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hash-token <token>",
		Short:       "Print the bcrypt hash to put in ADMIN_TOKEN_HASH",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"config": "skip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args[0]) < 16 {
				return errors.New("token must be at least 16 characters")
			}
			hash, err := middleware.HashToken(args[0])
			if err != nil {
				return fmt.Errorf("hash token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func withDB(cfg *config.Config, fn func(db *sql.DB) error) error {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	return fn(db)
}
