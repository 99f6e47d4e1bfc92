// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/lovelliph/Services/internal/seo"
	"github.com/lovelliph/Services/internal/site"
	"github.com/lovelliph/Services/internal/store"
)

// sitemapTTL is how long a rendered sitemap is served before rebuilding.
const sitemapTTL = 15 * time.Minute

func siteSEO(siteURL string) seo.SiteConfig {
	return seo.SiteConfig{SiteName: "Lovelli", SiteURL: siteURL}
}

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	queries     *store.Queries
	site        seo.SiteConfig
	disallowAll bool
	sitemap     *seo.SitemapCache
}

// NewSEOHandler creates a new SEOHandler. disallowAll keeps crawlers off
// non-production hosts.
func NewSEOHandler(db *sql.DB, siteURL string, disallowAll bool) *SEOHandler {
	h := &SEOHandler{
		queries:     store.New(db),
		site:        siteSEO(siteURL),
		disallowAll: disallowAll,
	}
	h.sitemap = seo.NewSitemapCache(h.buildSitemap, sitemapTTL)
	return h
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.site.SiteURL,
		DisallowAll: h.disallowAll,
	})))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.sitemap.Get(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

func (h *SEOHandler) buildSitemap(ctx context.Context) ([]byte, error) {
	services, err := h.queries.ListServices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list services for sitemap", "error", err)
	}

	b := seo.NewSitemapBuilder(h.site.SiteURL)
	b.AddHomepage()
	b.AddPath(RouteApply, time.Time{}, seo.ChangeFreqMonthly, "0.6")
	for _, s := range site.ServicesOr(services) {
		b.AddService(s.Slug, s.UpdatedAt)
	}
	return b.Build()
}
