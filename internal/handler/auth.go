// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/lovelliph/Services/internal/auth"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/session"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/util"
)

const (
	resetTokenBytes    = 32
	resetTokenLifetime = time.Hour

	msgInvalidCredentials = "Invalid email or password"
	msgResetSent          = "If an account exists for that email, a reset link has been sent."
	msgResetInvalid       = "This reset link is invalid or has expired."
	msgPasswordChanged    = "Your password has been changed. Please sign in."
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	mailer          Mailer
	baseURL         string
	trustedProxies  []string
	now             func() time.Time
}

// AuthConfig wires an AuthHandler.
type AuthConfig struct {
	Renderer        *render.Renderer
	SessionManager  *scs.SessionManager
	LoginProtection *middleware.LoginProtection // optional
	Mailer          Mailer
	// BaseURL prefixes the reset link, e.g. https://lovelli.com.
	BaseURL        string
	TrustedProxies []string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, cfg AuthConfig) *AuthHandler {
	mailer := cfg.Mailer
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        cfg.Renderer,
		sessionManager:  cfg.SessionManager,
		loginProtection: cfg.LoginProtection,
		mailer:          mailer,
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		trustedProxies:  cfg.TrustedProxies,
		now:             time.Now,
	}
}

// LoginData holds data for the login page.
type LoginData struct {
	Email string
	Next  string
	Error string
}

// LoginForm renders the login page. Signed-in admins go straight to next.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if h.sessionManager.GetInt64(r.Context(), session.KeyAdminID) > 0 {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginData{Next: next})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	renderPage(w, r, h.renderer, status, "auth/login", render.TemplateData{
		Title: "Admin Login | Lovelli",
		Data:  data,
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))
	password := r.PostFormValue("password")
	data := LoginData{Email: email, Next: safeNext(r.PostFormValue("next"))}

	if email == "" || password == "" {
		data.Error = "Email and password are required"
		h.renderLogin(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.WarnContext(r.Context(), "login attempt on locked account", "email", email, "ip", util.ClientIP(r, h.trustedProxies))
			data.Error = fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining))
			h.renderLogin(w, r, http.StatusTooManyRequests, data)
			return
		}
	}

	admin, err := h.queries.GetAdminUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.ErrorContext(r.Context(), "database error during login", "error", err)
		}
		// Record failed attempt even for unknown emails to prevent enumeration
		h.failLogin(w, r, data)
		return
	}

	valid, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil {
		slog.ErrorContext(r.Context(), "password check error", "error", err, "admin_id", admin.ID)
	}
	if !valid {
		h.failLogin(w, r, data)
		return
	}

	if !admin.IsActive {
		slog.WarnContext(r.Context(), "inactive admin tried to sign in", "admin_id", admin.ID)
		h.renderer.StatusPage(w, r, http.StatusForbidden, middleware.TitleInactive, middleware.MsgInactive)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	now := h.now().UTC()
	if auth.NeedsRehash(admin.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateAdminUserPassword(r.Context(), store.UpdateAdminUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    now,
				ID:           admin.ID,
			}); err != nil {
				slog.ErrorContext(r.Context(), "failed to re-hash password", "error", err, "admin_id", admin.ID)
			}
		}
	}

	if err := h.queries.UpdateAdminLastLogin(r.Context(), store.UpdateAdminLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          admin.ID,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to update last login time", "error", err, "admin_id", admin.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyAdminID, admin.ID)

	slog.InfoContext(r.Context(), "admin logged in", "admin_id", admin.ID, "role", admin.Role)
	h.renderer.SetFlash(r, "Welcome back, "+admin.Name+"!", render.FlashSuccess)
	http.Redirect(w, r, data.Next, http.StatusSeeOther)
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, data LoginData) {
	data.Error = msgInvalidCredentials
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(data.Email); locked {
			data.Error = fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration))
			h.renderLogin(w, r, http.StatusTooManyRequests, data)
			return
		}
		if remaining := h.loginProtection.RemainingAttempts(data.Email); remaining > 0 && remaining <= 3 {
			data.Error = fmt.Sprintf("%s. %d attempt(s) remaining.", msgInvalidCredentials, remaining)
		}
	}
	h.renderLogin(w, r, http.StatusUnauthorized, data)
}

// Logout handles admin logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	adminID := h.sessionManager.GetInt64(r.Context(), session.KeyAdminID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "session destroy error", "error", err)
	}
	slog.InfoContext(r.Context(), "admin logged out", "admin_id", adminID)

	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been signed out.", render.FlashInfo)
}

// ForgotPasswordForm renders the reset request page.
func (h *AuthHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, http.StatusOK, "auth/forgot_password", render.TemplateData{
		Title: "Forgot Password | Lovelli",
	})
}

// ForgotPassword issues a reset token. The answer is the same whether or
// not the email belongs to an admin.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectForgotPassword) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email")))

	if email != "" {
		if err := h.issueResetToken(r, email); err != nil {
			slog.ErrorContext(r.Context(), "failed to issue reset token", "error", err)
		}
	}

	flashSuccess(w, r, h.renderer, redirectLogin, msgResetSent)
}

func (h *AuthHandler) issueResetToken(r *http.Request, email string) error {
	ctx := r.Context()
	admin, err := h.queries.GetAdminUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		slog.DebugContext(ctx, "reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading admin: %w", err)
	}
	if !admin.IsActive {
		return nil
	}

	token, err := auth.GenerateToken(resetTokenBytes)
	if err != nil {
		return err
	}
	now := h.now().UTC()
	if _, err := h.queries.CreatePasswordResetToken(ctx, store.CreatePasswordResetTokenParams{
		AdminUserID: admin.ID,
		TokenHash:   auth.HashToken(token),
		ExpiresAt:   now.Add(resetTokenLifetime),
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	link := h.baseURL + RouteAdmin + RouteResetPassword + "?token=" + url.QueryEscape(token)
	return h.mailer.SendPasswordReset(ctx, admin.Email, admin.Name, link)
}

// ResetPasswordData holds data for the reset page.
type ResetPasswordData struct {
	Token string
	Error string
}

// validToken returns the stored token when it is unused and unexpired.
func (h *AuthHandler) validToken(r *http.Request, token string) (store.PasswordResetToken, bool) {
	if token == "" {
		return store.PasswordResetToken{}, false
	}
	t, err := h.queries.GetPasswordResetToken(r.Context(), auth.HashToken(token))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.ErrorContext(r.Context(), "failed to load reset token", "error", err)
		}
		return store.PasswordResetToken{}, false
	}
	if t.UsedAt.Valid || !h.now().Before(t.ExpiresAt) {
		return store.PasswordResetToken{}, false
	}
	return t, true
}

// ResetPasswordForm renders the new-password page for a valid token.
func (h *AuthHandler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, ok := h.validToken(r, token); !ok {
		flashError(w, r, h.renderer, redirectForgotPassword, msgResetInvalid)
		return
	}
	h.renderReset(w, r, http.StatusOK, ResetPasswordData{Token: token})
}

func (h *AuthHandler) renderReset(w http.ResponseWriter, r *http.Request, status int, data ResetPasswordData) {
	renderPage(w, r, h.renderer, status, "auth/reset_password", render.TemplateData{
		Title: "Reset Password | Lovelli",
		Data:  data,
	})
}

// ResetPassword sets the new password and consumes the token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectForgotPassword) {
		return
	}
	token := r.PostFormValue("token")
	t, ok := h.validToken(r, token)
	if !ok {
		flashError(w, r, h.renderer, redirectForgotPassword, msgResetInvalid)
		return
	}

	password := r.PostFormValue("password")
	data := ResetPasswordData{Token: token}
	if err := auth.ValidatePassword(password); err != nil {
		data.Error = passwordPolicyMessage(err)
		h.renderReset(w, r, http.StatusUnprocessableEntity, data)
		return
	}
	if password != r.PostFormValue("password_confirm") {
		data.Error = "Passwords do not match"
		h.renderReset(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, r, "failed to hash password", "error", err)
		return
	}

	now := h.now().UTC()
	used, err := h.queries.MarkPasswordResetTokenUsed(r.Context(), store.MarkPasswordResetTokenUsedParams{
		UsedAt: sql.NullTime{Time: now, Valid: true},
		ID:     t.ID,
	})
	if err != nil {
		logAndInternalError(w, r, "failed to consume reset token", "error", err)
		return
	}
	if used == 0 {
		flashError(w, r, h.renderer, redirectForgotPassword, msgResetInvalid)
		return
	}

	if err := h.queries.UpdateAdminUserPassword(r.Context(), store.UpdateAdminUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    now,
		ID:           t.AdminUserID,
	}); err != nil {
		logAndInternalError(w, r, "failed to update password", "error", err, "admin_id", t.AdminUserID)
		return
	}

	slog.InfoContext(r.Context(), "admin password reset", "admin_id", t.AdminUserID)
	flashSuccess(w, r, h.renderer, redirectLogin, msgPasswordChanged)
}

func passwordPolicyMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength)
	case errors.Is(err, auth.ErrPasswordTooLong):
		return fmt.Sprintf("Password must be at most %d characters", auth.MaxPasswordLength)
	}
	return "Invalid password"
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
