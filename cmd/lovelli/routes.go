// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lovelliph/Services/internal/apply"
	"github.com/lovelliph/Services/internal/config"
	"github.com/lovelliph/Services/internal/handler"
	"github.com/lovelliph/Services/internal/metrics"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/web"
)

// app holds everything the router needs.
type app struct {
	cfg             *config.Config
	db              *sql.DB
	sessions        *scs.SessionManager
	renderer        *render.Renderer
	metrics         *metrics.Metrics // nil when disabled
	apply           *apply.Service
	loginProtection *middleware.LoginProtection
	redis           handler.Pinger // nil without Redis
	mailer          handler.Mailer
}

// contentRoutes are the admin screens shared by services, projects and blog.
type contentRoutes struct {
	List       http.HandlerFunc
	NewForm    http.HandlerFunc
	Create     http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	BulkDelete http.HandlerFunc
}

// registerContent mounts the write routes of a content list under base.
// HTML forms can't send PUT or DELETE, so every mutation is a POST.
func registerContent(r chi.Router, base string, h contentRoutes) {
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(base+handler.RouteSuffixEdit, h.EditForm)
	r.Post(base+handler.RouteSuffixEdit, h.Update)
	r.Post(base+handler.RouteSuffixDelete, h.Delete)
	r.Post(base+handler.RouteSuffixBulkDelete, h.BulkDelete)
}

func newRouter(a app) http.Handler {
	cfg := a.cfg
	queries := store.New(a.db)
	sm := a.sessions

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestContext)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	securityConfig.ExcludePaths = []string{handler.RouteMetrics}
	r.Use(middleware.SecurityHeaders(securityConfig))
	if cfg.RequireHTTPS {
		r.Use(middleware.RequireHTTPS)
	}

	r.Use(sm.LoadAndSave)
	r.Use(middleware.CSRF(middleware.NewCSRFConfig(
		[]byte(cfg.SessionSecret), cfg.CSRFTrustedOrigins, cfg.IsDevelopment(), a.renderer,
	)))

	// Public site
	publicHandler := handler.NewPublicHandler(a.db, a.renderer, cfg.TrustedProxies, cfg.BaseURL)
	applyHandler := handler.NewApplyHandler(a.apply, a.renderer, sm, cfg.TrustedProxies, cfg.ApplyRedirectDelay, cfg.ApplyDebounce)
	publicLimiter := middleware.NewPublicRateLimiter(2, 20, cfg.TrustedProxies)

	r.Get(handler.RouteRoot, publicHandler.Home)
	r.Get(handler.RouteServiceSlug, publicHandler.ServiceDetail)
	r.Get(handler.RouteApply, applyHandler.ApplyForm)
	r.With(publicLimiter.HTMLMiddleware()).Post(handler.RouteApply, applyHandler.ApplySubmit)
	r.With(publicLimiter.JSONMiddleware()).Post(handler.RouteApplyValidate, applyHandler.ApplyValidate)
	r.With(publicLimiter.HTMLMiddleware()).Post(handler.RouteContact, publicHandler.ContactSubmit)

	seoHandler := handler.NewSEOHandler(a.db, cfg.BaseURL, cfg.Env != "production")
	r.Get(handler.RouteRobots, seoHandler.Robots)
	r.Get(handler.RouteSitemap, seoHandler.Sitemap)

	// Admin
	authHandler := handler.NewAuthHandler(a.db, handler.AuthConfig{
		Renderer:        a.renderer,
		SessionManager:  sm,
		LoginProtection: a.loginProtection,
		Mailer:          a.mailer,
		BaseURL:         cfg.BaseURL,
		TrustedProxies:  cfg.TrustedProxies,
	})
	adminHandler := handler.NewAdminHandler(a.db, a.renderer)
	servicesHandler := handler.NewServicesHandler(a.db, a.renderer)
	projectsHandler := handler.NewProjectsHandler(a.db, a.renderer)
	blogHandler := handler.NewBlogHandler(a.db, a.renderer, nil)
	applicantsHandler := handler.NewApplicantsHandler(a.db, a.renderer)
	inquiriesHandler := handler.NewInquiriesHandler(a.db, a.renderer)
	usersHandler := handler.NewUsersHandler(a.db, a.renderer)

	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(middleware.NoStore)

		r.Group(func(r chi.Router) {
			if a.loginProtection != nil {
				r.Use(a.loginProtection.Middleware())
			}
			r.Get(handler.RouteLogin, authHandler.LoginForm)
			r.Post(handler.RouteLogin, authHandler.Login)
			r.Get(handler.RouteForgotPassword, authHandler.ForgotPasswordForm)
			r.Post(handler.RouteForgotPassword, authHandler.ForgotPassword)
			r.Get(handler.RouteResetPassword, authHandler.ResetPasswordForm)
			r.Post(handler.RouteResetPassword, authHandler.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sm, queries, a.renderer))

			r.Post(handler.RouteLogout, authHandler.Logout)

			// viewer
			r.Get("/", adminHandler.Dashboard)
			r.Get(handler.RouteServices, servicesHandler.List)
			r.Get(handler.RouteProjects, projectsHandler.List)
			r.Get(handler.RouteBlog, blogHandler.List)
			r.Get(handler.RouteApplicants, applicantsHandler.List)
			r.Get(handler.RouteApplicants+handler.RouteSuffixView, applicantsHandler.View)
			r.Get(handler.RouteInquiries, inquiriesHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleEditor, a.renderer))
				registerContent(r, handler.RouteServices, contentRoutes{
					NewForm:    servicesHandler.NewForm,
					Create:     servicesHandler.Create,
					EditForm:   servicesHandler.EditForm,
					Update:     servicesHandler.Update,
					Delete:     servicesHandler.Delete,
					BulkDelete: servicesHandler.BulkDelete,
				})
				r.Post(handler.RouteServices+handler.RouteSuffixReorder, servicesHandler.Reorder)
				registerContent(r, handler.RouteProjects, contentRoutes{
					NewForm:    projectsHandler.NewForm,
					Create:     projectsHandler.Create,
					EditForm:   projectsHandler.EditForm,
					Update:     projectsHandler.Update,
					Delete:     projectsHandler.Delete,
					BulkDelete: projectsHandler.BulkDelete,
				})
				registerContent(r, handler.RouteBlog, contentRoutes{
					NewForm:    blogHandler.NewForm,
					Create:     blogHandler.Create,
					EditForm:   blogHandler.EditForm,
					Update:     blogHandler.Update,
					Delete:     blogHandler.Delete,
					BulkDelete: blogHandler.BulkDelete,
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleAdmin, a.renderer))
				r.Post(handler.RouteApplicants+handler.RouteSuffixStatus, applicantsHandler.UpdateStatus)
				r.Post(handler.RouteApplicants+handler.RouteSuffixDelete, applicantsHandler.Delete)
				r.Post(handler.RouteInquiries+handler.RouteSuffixRead, inquiriesHandler.MarkRead)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleSuperAdmin, a.renderer))
				r.Get(handler.RouteUsers, usersHandler.List)
				r.Post(handler.RouteUsers, usersHandler.Create)
				r.Post(handler.RouteUsers+handler.RouteSuffixRole, usersHandler.UpdateRole)
				r.Post(handler.RouteUsers+handler.RouteSuffixActive, usersHandler.SetActive)
			})
		})
	})

	// Ops
	healthHandler := handler.NewHealthHandler(a.db, a.redis)
	r.With(middleware.LoadAdmin(sm, queries)).Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)
	if a.metrics != nil {
		r.Method(http.MethodGet, handler.RouteMetrics, a.metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		// the embed path is fixed at compile time
		panic(err)
	}
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/dist/*", staticHandler)

	r.NotFound(a.renderer.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		a.renderer.StatusPage(w, req, http.StatusMethodNotAllowed, "Method Not Allowed", "This address does not accept that kind of request.")
	})

	slog.Info("routes registered", "metrics", a.metrics != nil, "require_https", cfg.RequireHTTPS)
	return r
}
