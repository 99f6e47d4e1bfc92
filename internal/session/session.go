// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the admin session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys shared by middleware and handlers.
const (
	KeyAdminID     = "admin_id"
	KeyFlash       = "flash"
	KeyFlashType   = "flash_type"
	KeyApplyResult = "apply_result"
)

const (
	// DefaultLifetime is the absolute session lifetime.
	DefaultLifetime = 24 * time.Hour
	// DefaultIdleTimeout logs out admins who stop using the dashboard.
	DefaultIdleTimeout = 2 * time.Hour
)

// New creates a session manager backed by the sessions table.
// In production the cookie is Secure and uses the __Host- prefix.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = DefaultLifetime
	sm.IdleTimeout = DefaultIdleTimeout
	sm.Cookie.Name = "lovelli_session"
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-lovelli_session"
	}

	return sm
}
