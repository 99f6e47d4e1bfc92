// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovelliph/Services/internal/auth"
	"github.com/lovelliph/Services/internal/config"
	"github.com/lovelliph/Services/internal/logging"
	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/store"
)

// openDB creates the data directory and opens the database at path.
func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := store.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// withStorage opens the database for a maintenance command.
func withStorage(fn func(ctx context.Context, db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadStorage()
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.Env == "development"))

		db, err := openDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return fn(cmd.Context(), db)
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withStorage(func(_ context.Context, db *sql.DB) error {
				if err := store.Migrate(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withStorage(func(_ context.Context, db *sql.DB) error {
				if err := store.MigrateDown(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: withStorage(func(_ context.Context, db *sql.DB) error {
				return printVersion(cmd, db)
			}),
		},
	)
	return cmd
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	v, err := store.MigrationVersion(db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var name, email, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Long: "Create an admin account. The password is read from LOVELLI_ADMIN_PASSWORD " +
			"so it does not end up in shell history.",
		Args: cobra.NoArgs,
		RunE: withStorage(func(ctx context.Context, db *sql.DB) error {
			if err := store.Migrate(db); err != nil {
				return err
			}
			user, err := createAdmin(ctx, store.New(db), name, email, role, os.Getenv("LOVELLI_ADMIN_PASSWORD"), time.Now().UTC())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with id %d\n", user.Email, user.Role, user.ID)
			return nil
		}),
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "login email (required)")
	create.Flags().StringVar(&role, "role", string(model.RoleAdmin), "viewer, editor, admin or super_admin")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

// createAdmin validates the input and inserts an active admin account.
func createAdmin(ctx context.Context, q *store.Queries, name, email, role, password string, now time.Time) (store.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return store.AdminUser{}, fmt.Errorf("invalid email %q", email)
	}
	if !model.Role(role).Valid() {
		return store.AdminUser{}, fmt.Errorf("invalid role %q", role)
	}
	if password == "" {
		return store.AdminUser{}, errors.New("LOVELLI_ADMIN_PASSWORD is not set")
	}
	if err := auth.ValidatePassword(password); err != nil {
		return store.AdminUser{}, err
	}
	if name = strings.TrimSpace(name); name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("hashing password: %w", err)
	}
	user, err := q.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if store.IsUniqueViolation(err) {
		return store.AdminUser{}, fmt.Errorf("an admin with email %s already exists", email)
	}
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("creating admin: %w", err)
	}
	return user, nil
}
