// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/session"
	"github.com/lovelliph/Services/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin holds the signed-in store.AdminUser.
const ContextKeyAdmin ContextKey = "admin"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// Texts of the static pages shown by the gate.
const (
	TitleInactive   = "Account Inactive"
	MsgInactive     = "Your admin account has been deactivated. Please contact your administrator."
	TitleForbidden  = "Access Denied"
	MsgForbidden    = "You don't have permission to access this page."
	TitleCSRFFailed = "Request Rejected"
	MsgCSRFFailed   = "Your request could not be verified. Please reload the page and try again."
)

// AdminLookup loads admin profiles.
type AdminLookup interface {
	GetAdminUserByID(ctx context.Context, id int64) (store.AdminUser, error)
}

// PageWriter renders a full-page message with the given status.
type PageWriter interface {
	StatusPage(w http.ResponseWriter, r *http.Request, status int, title, message string)
}

// LoginRedirect returns the login URL that brings the user back to r afterwards.
func LoginRedirect(r *http.Request) string {
	return LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

// RequireAdmin lets a request through only for a signed-in, active admin.
// Anonymous requests are redirected to the login page with ?next= set.
// A session whose admin profile no longer exists is destroyed.
func RequireAdmin(sm *scs.SessionManager, admins AdminLookup, pages PageWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sm.GetInt64(r.Context(), session.KeyAdminID)
			if id == 0 {
				http.Redirect(w, r, LoginRedirect(r), http.StatusSeeOther)
				return
			}

			admin, err := admins.GetAdminUserByID(r.Context(), id)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.ErrorContext(r.Context(), "loading admin profile", "error", err, "admin_id", id)
				}
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, LoginRedirect(r), http.StatusSeeOther)
				return
			}

			if !admin.IsActive {
				slog.WarnContext(r.Context(), "inactive admin blocked", "admin_id", admin.ID)
				pages.StatusPage(w, r, http.StatusForbidden, TitleInactive, MsgInactive)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the admin stored by RequireAdmin, or nil.
func GetAdmin(r *http.Request) *store.AdminUser {
	return AdminFromContext(r.Context())
}

// AdminFromContext is GetAdmin for code that only has a context.
func AdminFromContext(ctx context.Context) *store.AdminUser {
	admin, ok := ctx.Value(ContextKeyAdmin).(store.AdminUser)
	if !ok {
		return nil
	}
	return &admin
}

// WithAdmin stores admin in ctx. Used by tests and RequireAdmin.
func WithAdmin(ctx context.Context, admin store.AdminUser) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, admin)
}

// AdminRole returns the role of the signed-in admin, or "" when none.
func AdminRole(r *http.Request) model.Role {
	if admin := GetAdmin(r); admin != nil {
		return model.Role(admin.Role)
	}
	return ""
}

// RequireRole rejects admins whose role ranks below minRole with a 403
// page. It must run after RequireAdmin.
func RequireRole(minRole model.Role, pages PageWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := GetAdmin(r)
			if admin == nil {
				http.Redirect(w, r, LoginRedirect(r), http.StatusSeeOther)
				return
			}

			if !model.Role(admin.Role).AtLeast(minRole) {
				slog.WarnContext(r.Context(), "access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"admin_id", admin.ID,
					"admin_role", admin.Role,
					"required_role", string(minRole),
				)
				pages.StatusPage(w, r, http.StatusForbidden, TitleForbidden, MsgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin puts the signed-in active admin into the request context when
// there is one and never blocks the request. It is used on public routes
// that show more to staff.
func LoadAdmin(sm *scs.SessionManager, admins AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := sm.GetInt64(r.Context(), session.KeyAdminID); id != 0 {
				admin, err := admins.GetAdminUserByID(r.Context(), id)
				if err == nil && admin.IsActive {
					r = r.WithContext(WithAdmin(r.Context(), admin))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
