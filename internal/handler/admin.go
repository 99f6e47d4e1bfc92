// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// recentApplicantsLimit is the number of applicants listed on the dashboard.
const recentApplicantsLimit = 5

// AdminHandler serves the dashboard.
type AdminHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// DashboardStats holds the counts shown on the dashboard.
type DashboardStats struct {
	Services   int64
	Projects   int64
	BlogPosts  int64
	Applicants int64
	Inquiries  int64
	Admins     int64
}

// DashboardData holds data for the dashboard page.
type DashboardData struct {
	Stats            DashboardStats
	RecentApplicants []store.Applicant
}

// Dashboard handles GET /admin. The counts are loaded concurrently.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var data DashboardData

	g, ctx := errgroup.WithContext(r.Context())
	counts := []struct {
		name string
		fn   func(context.Context) (int64, error)
		dst  *int64
	}{
		{"services", h.queries.CountServices, &data.Stats.Services},
		{"projects", h.queries.CountProjects, &data.Stats.Projects},
		{"blog posts", h.queries.CountBlogPosts, &data.Stats.BlogPosts},
		{"applicants", h.queries.CountApplicants, &data.Stats.Applicants},
		{"inquiries", h.queries.CountContactInquiries, &data.Stats.Inquiries},
		{"admin users", h.queries.CountAdminUsers, &data.Stats.Admins},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.fn(ctx)
			if err != nil {
				return fmt.Errorf("counting %s: %w", c.name, err)
			}
			*c.dst = n
			return nil
		})
	}
	g.Go(func() error {
		applicants, err := h.queries.ListApplicants(ctx, "")
		if err != nil {
			return fmt.Errorf("listing applicants: %w", err)
		}
		data.RecentApplicants = applicants[:min(len(applicants), recentApplicantsLimit)]
		return nil
	})

	if err := g.Wait(); err != nil {
		logAndInternalError(w, r, "failed to load dashboard", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	})
}
