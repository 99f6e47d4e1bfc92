// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lovelliph/Services/internal/apply"
	"github.com/lovelliph/Services/internal/config"
	"github.com/lovelliph/Services/internal/geoip"
	"github.com/lovelliph/Services/internal/handler"
	"github.com/lovelliph/Services/internal/iplookup"
	"github.com/lovelliph/Services/internal/logging"
	"github.com/lovelliph/Services/internal/metrics"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/ratelimit"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/scheduler"
	"github.com/lovelliph/Services/internal/session"
	"github.com/lovelliph/Services/internal/site"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/version"
	"github.com/lovelliph/Services/web"
)

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())
	slog.SetDefault(logger)
	slog.Info("starting lovelli", "version", version.Get().String(), "env", cfg.Env)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := store.Seed(ctx, db, store.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if cfg.DoSeed {
		if err := store.SeedContent(ctx, db, site.SeedData()); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	geo, err := geoip.NewLookup(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP disabled", "path", cfg.GeoIPDBPath, "error", err)
	}
	defer func() { _ = geo.Close() }()

	var m *metrics.Metrics
	var recorder apply.OutcomeRecorder
	if cfg.MetricsEnabled {
		m = metrics.New()
		recorder = m
	}

	limits := ratelimit.Limits{Max: cfg.ApplyRateLimitMax, Window: cfg.ApplyRateLimitWindow}
	var limiter apply.RateLimiter = ratelimit.NewStoreChecker(store.New(db), limits)
	var redisPinger handler.Pinger
	if cfg.UseRedis() {
		rc, err := ratelimit.NewRedisChecker(ctx, ratelimit.RedisOptions{
			URL:         cfg.RedisURL,
			Prefix:      cfg.RedisPrefix,
			Limits:      limits,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			slog.Warn("redis unavailable, counting applications in the database", "error", err)
		} else {
			defer func() { _ = rc.Close() }()
			limiter = rc
			redisPinger = rc
			slog.Info("apply rate limit backed by redis")
		}
	}

	var lookupClient *iplookup.Client
	if cfg.IPLookupURL != "" {
		lookupClient = iplookup.NewClient(cfg.IPLookupURL, cfg.IPLookupTimeout)
	}

	applyService := apply.NewService(apply.Config{
		Store:     store.New(db),
		Limiter:   limiter,
		Resolver:  iplookup.NewResolver(lookupClient),
		Countries: geo,
		Recorder:  recorder,
		Debounce:  apply.GuardDelay,
		Window:    cfg.ApplyRateLimitWindow,
		Logger:    logger,
	})

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		TrustedProxies: cfg.TrustedProxies,
	})
	go loginProtection.Run(ctx, 5*time.Minute)

	sched := scheduler.New(logger, 0)
	var geoReloader scheduler.Reloader
	if geo.Enabled() {
		geoReloader = geo
	}
	if err := scheduler.RegisterDefaults(sched, db, geoReloader); err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	router := newRouter(app{
		cfg:             cfg,
		db:              db,
		sessions:        sessionManager,
		renderer:        renderer,
		metrics:         m,
		apply:           applyService,
		loginProtection: loginProtection,
		redis:           redisPinger,
		mailer:          handler.LogMailer{Logger: logger, Dev: cfg.IsDevelopment()},
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
