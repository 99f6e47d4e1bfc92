// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/lovelliph/Services/internal/auth"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/testutil"
	"github.com/lovelliph/Services/web"
)

// testEnv bundles what every handler test needs.
type testEnv struct {
	db       *sql.DB
	queries  *store.Queries
	sm       *scs.SessionManager
	renderer *render.Renderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := scs.New()
	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testEnv{db: db, queries: store.New(db), sm: sm, renderer: renderer}
}

// request describes one call made through serve.
type request struct {
	method  string
	pattern string
	target  string
	form    url.Values
	json    string
	admin   *store.AdminUser
	header  map[string]string
	// session values stored before the handler runs
	session map[string]any
}

// serve routes req to h through chi (for URL params) and the session
// middleware, with req.admin put in the context as RequireAdmin would.
func (e *testEnv) serve(t *testing.T, req request, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	if req.method == "" {
		req.method = http.MethodGet
	}
	if req.pattern == "" {
		// chi patterns never carry the query string
		req.pattern, _, _ = strings.Cut(req.target, "?")
	}

	r := chi.NewRouter()
	r.Use(e.sm.LoadAndSave)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range req.session {
				e.sm.Put(r.Context(), k, v)
			}
			if req.admin != nil {
				r = r.WithContext(middleware.WithAdmin(r.Context(), *req.admin))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Method(req.method, req.pattern, h)

	var body io.Reader
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
	case req.json != "":
		body = strings.NewReader(req.json)
	}
	httpReq := httptest.NewRequest(req.method, req.target, body)
	switch {
	case req.form != nil:
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case req.json != "":
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.header {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httpReq)
	return rec
}

func (e *testEnv) createAdmin(t *testing.T, email, password, role string, active bool) store.AdminUser {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now().UTC()
	a, err := e.queries.CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Email:        email,
		Name:         strings.Split(email, "@")[0],
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	return a
}

func (e *testEnv) createService(t *testing.T, title, slug string, position int64) store.Service {
	t.Helper()
	now := time.Now().UTC()
	s, err := e.queries.CreateService(context.Background(), store.CreateServiceParams{
		Title:       title,
		Slug:        slug,
		Description: title + " for growing brands",
		Image:       "https://images.example.com/" + slug + ".jpg",
		Position:    position,
		Features:    store.StringList{"Planning"},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	return s
}

func (e *testEnv) createProject(t *testing.T, title, slug, category string, featured bool) store.Project {
	t.Helper()
	now := time.Now().UTC()
	p, err := e.queries.CreateProject(context.Background(), store.CreateProjectParams{
		Title:       title,
		Slug:        slug,
		Description: "Case study of " + title,
		Image:       "https://images.example.com/" + slug + ".jpg",
		Category:    category,
		Featured:    featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return p
}

func editor() *store.AdminUser {
	return &store.AdminUser{ID: 1000, Name: "Eddie", Email: "eddie@lovelli.com", Role: "editor", IsActive: true}
}

func viewer() *store.AdminUser {
	return &store.AdminUser{ID: 1001, Name: "Vera", Email: "vera@lovelli.com", Role: "viewer", IsActive: true}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func assertContains(t *testing.T, rec *httptest.ResponseRecorder, substrings ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, s := range substrings {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}

func storeListPublished(now time.Time) store.ListPublishedBlogPostsParams {
	return store.ListPublishedBlogPostsParams{Now: now.UTC(), Limit: 10}
}
