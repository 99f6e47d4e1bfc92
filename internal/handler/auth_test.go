// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/lovelliph/Services/internal/auth"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/session"
)

type captureMailer struct {
	mu    sync.Mutex
	to    []string
	links []string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.links = append(m.links, link)
	return nil
}

func newAuthHandler(env *testEnv, lp *middleware.LoginProtection, mailer Mailer) *AuthHandler {
	return NewAuthHandler(env.db, AuthConfig{
		Renderer:        env.renderer,
		SessionManager:  env.sm,
		LoginProtection: lp,
		Mailer:          mailer,
		BaseURL:         "https://lovelli.test/",
	})
}

func loginForm(email, password, next string) url.Values {
	return url.Values{"email": {email}, "password": {password}, "next": {next}}
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "ada@lovelli.com", "correct-horse", "admin", true)
	h := newAuthHandler(env, nil, nil)

	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/login",
		form: loginForm(" Ada@Lovelli.com ", "correct-horse", "/admin/services?q=web")}, h.Login)
	assertRedirect(t, rec, "/admin/services?q=web")
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	got, err := env.queries.GetAdminUserByID(context.Background(), admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastLoginAt.Valid {
		t.Error("last login time not recorded")
	}
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "ada@lovelli.com", "correct-horse", "admin", true)
	env.createAdmin(t, "gone@lovelli.com", "correct-horse", "editor", false)
	h := newAuthHandler(env, nil, nil)

	tests := []struct {
		name   string
		form   url.Values
		status int
		want   string
	}{
		{"missing fields", loginForm("", "", ""), http.StatusUnprocessableEntity, "Email and password are required"},
		{"wrong password", loginForm("ada@lovelli.com", "nope-nope", ""), http.StatusUnauthorized, msgInvalidCredentials},
		{"unknown email", loginForm("who@lovelli.com", "correct-horse", ""), http.StatusUnauthorized, msgInvalidCredentials},
		{"inactive", loginForm("gone@lovelli.com", "correct-horse", ""), http.StatusForbidden, middleware.TitleInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(t, request{method: http.MethodPost, target: "/admin/login", form: tt.form}, h.Login)
			assertStatus(t, rec, tt.status)
			assertContains(t, rec, tt.want)
		})
	}
}

func TestAuthHandler_Lockout(t *testing.T) {
	env := newTestEnv(t)
	env.createAdmin(t, "ada@lovelli.com", "correct-horse", "admin", true)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   10 * time.Minute,
		AttemptWindow:     time.Hour,
	})
	h := newAuthHandler(env, lp, nil)

	attempt := func(password string) int {
		rec := env.serve(t, request{method: http.MethodPost, target: "/admin/login", form: loginForm("ada@lovelli.com", password, "")}, h.Login)
		return rec.Code
	}

	if code := attempt("wrong-1"); code != http.StatusUnauthorized {
		t.Fatalf("first failure: status %d", code)
	}
	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/login", form: loginForm("ada@lovelli.com", "wrong-2", "")}, h.Login)
	assertStatus(t, rec, http.StatusUnauthorized)
	assertContains(t, rec, "1 attempt(s) remaining")

	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/login", form: loginForm("ada@lovelli.com", "wrong-3", "")}, h.Login)
	assertStatus(t, rec, http.StatusTooManyRequests)
	assertContains(t, rec, "Account locked for 10 minutes")

	// even the right password is refused while locked
	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/login", form: loginForm("ada@lovelli.com", "correct-horse", "")}, h.Login)
	assertStatus(t, rec, http.StatusTooManyRequests)
	assertContains(t, rec, "Account temporarily locked")
}

func TestAuthHandler_LoginFormRedirectsSignedIn(t *testing.T) {
	env := newTestEnv(t)
	h := newAuthHandler(env, nil, nil)

	rec := env.serve(t, request{target: "/admin/login?next=/admin/blog"}, h.LoginForm)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, `value="/admin/blog"`)

	rec = env.serve(t, request{target: "/admin/login?next=/admin/blog",
		session: map[string]any{session.KeyAdminID: int64(7)}}, h.LoginForm)
	assertRedirect(t, rec, "/admin/blog")
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createAdmin(t, "ada@lovelli.com", "correct-horse", "admin", true)
	mailer := &captureMailer{}
	h := newAuthHandler(env, nil, mailer)

	// unknown addresses get the same answer and no mail
	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/forgot-password", form: url.Values{"email": {"nobody@lovelli.com"}}}, h.ForgotPassword)
	assertRedirect(t, rec, "/admin/login")
	if len(mailer.links) != 0 {
		t.Fatalf("mail sent for unknown address: %v", mailer.links)
	}

	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/forgot-password", form: url.Values{"email": {"ADA@lovelli.com"}}}, h.ForgotPassword)
	assertRedirect(t, rec, "/admin/login")
	if len(mailer.links) != 1 || mailer.to[0] != "ada@lovelli.com" {
		t.Fatalf("reset mail = %v to %v", mailer.links, mailer.to)
	}

	link, err := url.Parse(mailer.links[0])
	if err != nil {
		t.Fatal(err)
	}
	if link.Host != "lovelli.test" || link.Path != "/admin/reset-password" {
		t.Errorf("reset link = %s", link)
	}
	token := link.Query().Get("token")

	rec = env.serve(t, request{pattern: "/admin/reset-password", target: "/admin/reset-password?token=" + url.QueryEscape(token)}, h.ResetPasswordForm)
	assertStatus(t, rec, http.StatusOK)

	rec = env.serve(t, request{pattern: "/admin/reset-password", target: "/admin/reset-password?token=bogus"}, h.ResetPasswordForm)
	assertRedirect(t, rec, "/admin/forgot-password")

	reset := func(password, confirm string) *http.Response {
		rec := env.serve(t, request{method: http.MethodPost, target: "/admin/reset-password",
			form: url.Values{"token": {token}, "password": {password}, "password_confirm": {confirm}}}, h.ResetPassword)
		return rec.Result()
	}

	if res := reset("short", "short"); res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("short password: status %d", res.StatusCode)
	}
	if res := reset("new-password-1", "new-password-2"); res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("mismatch: status %d", res.StatusCode)
	}
	if res := reset("new-password-1", "new-password-1"); res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/login" {
		t.Errorf("reset: status %d location %q", res.StatusCode, res.Header.Get("Location"))
	}

	// token is single use
	if res := reset("another-pass-9", "another-pass-9"); res.Header.Get("Location") != "/admin/forgot-password" {
		t.Errorf("reused token: location %q", res.Header.Get("Location"))
	}

	got, err := env.queries.GetAdminUserByID(context.Background(), admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := auth.CheckPassword("new-password-1", got.PasswordHash); !ok {
		t.Error("new password does not verify")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30 seconds"},
		{time.Minute, "1 minute"},
		{15 * time.Minute, "15 minutes"},
		{time.Hour, "1 hour"},
		{5 * time.Hour, "5 hours"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
