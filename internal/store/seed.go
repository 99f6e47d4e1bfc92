// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovelliph/Services/internal/auth"
)

// Default admin identity used when the database has no admin users.
const (
	DefaultAdminEmail = "admin@lovelli.com"
	DefaultAdminName  = "Administrator"
)

// SeedOptions controls the first-run admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string // generated and logged once when empty
}

// Seed creates a super admin when no admin user exists yet.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)

	count, err := queries.CountAdminUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}

	email := opts.AdminEmail
	if email == "" {
		email = DefaultAdminEmail
	}
	password := opts.AdminPassword
	generated := false
	if password == "" {
		password, err = auth.GenerateToken(12)
		if err != nil {
			return fmt.Errorf("generating admin password: %w", err)
		}
		generated = true
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := queries.CreateAdminUser(ctx, CreateAdminUserParams{
		Email:        email,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
		Role:         "super_admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if generated {
		slog.Info("created default admin user", "id", user.ID, "email", user.Email, "password", password)
	} else {
		slog.Info("created default admin user", "id", user.ID, "email", user.Email)
	}
	return nil
}

// SeedData is the starter content inserted into empty tables.
type SeedData struct {
	Services  []Service
	Projects  []Project
	BlogPosts []BlogPost
}

// SeedContent inserts data into each content table that is still empty.
// Tables that already hold rows are left untouched.
func SeedContent(ctx context.Context, db *sql.DB, data SeedData) error {
	queries := New(db)
	now := time.Now().UTC()

	n, err := queries.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("counting services: %w", err)
	}
	if n == 0 {
		for i, s := range data.Services {
			if _, err := queries.CreateService(ctx, CreateServiceParams{
				Title:           s.Title,
				Slug:            s.Slug,
				Description:     s.Description,
				LongDescription: s.LongDescription,
				Image:           s.Image,
				Icon:            s.Icon,
				Position:        int64(i + 1),
				Features:        s.Features,
				Benefits:        s.Benefits,
				CreatedAt:       now,
				UpdatedAt:       now,
			}); err != nil {
				return fmt.Errorf("seeding service %q: %w", s.Slug, err)
			}
		}
		slog.Info("seeded services", "count", len(data.Services))
	}

	n, err = queries.CountProjects(ctx)
	if err != nil {
		return fmt.Errorf("counting projects: %w", err)
	}
	if n == 0 {
		for _, p := range data.Projects {
			if _, err := queries.CreateProject(ctx, CreateProjectParams{
				Title:       p.Title,
				Slug:        p.Slug,
				Description: p.Description,
				Image:       p.Image,
				Category:    p.Category,
				Client:      p.Client,
				Link:        p.Link,
				Featured:    p.Featured,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return fmt.Errorf("seeding project %q: %w", p.Slug, err)
			}
		}
		slog.Info("seeded projects", "count", len(data.Projects))
	}

	n, err = queries.CountBlogPosts(ctx)
	if err != nil {
		return fmt.Errorf("counting blog posts: %w", err)
	}
	if n == 0 {
		for _, p := range data.BlogPosts {
			if _, err := queries.CreateBlogPost(ctx, CreateBlogPostParams{
				Title:         p.Title,
				Slug:          p.Slug,
				Excerpt:       p.Excerpt,
				Content:       p.Content,
				Category:      p.Category,
				FeaturedImage: p.FeaturedImage,
				Author:        p.Author,
				PublishedAt:   p.PublishedAt,
				CreatedAt:     now,
				UpdatedAt:     now,
			}); err != nil {
				return fmt.Errorf("seeding blog post %q: %w", p.Slug, err)
			}
		}
		slog.Info("seeded blog posts", "count", len(data.BlogPosts))
	}

	return nil
}
