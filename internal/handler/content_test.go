// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestProjectsHandler_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	env.createProject(t, "Summer Campaign", "summer-campaign", "Social", true)
	env.createProject(t, "Rebrand", "rebrand", "Branding", false)
	h := NewProjectsHandler(env.db, env.renderer)

	rec := env.serve(t, request{target: "/admin/projects", admin: editor()}, h.List)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Summer Campaign", "Rebrand", `<option value="Branding"`, "Showing 2 of 2")

	rec = env.serve(t, request{pattern: "/admin/projects", target: "/admin/projects?category=Branding", admin: editor()}, h.List)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Showing 1 of 2", "Rebrand")
}

func TestProjectsHandler_CRUD(t *testing.T) {
	env := newTestEnv(t)
	h := NewProjectsHandler(env.db, env.renderer)
	ctx := context.Background()

	form := url.Values{
		"title":       {"Launch Video"},
		"description": {"Product launch reel"},
		"image":       {"https://images.example.com/launch.jpg"},
		"category":    {"Video"},
		"featured":    {"on"},
	}
	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/projects", form: form, admin: editor()}, h.Create)
	assertRedirect(t, rec, "/admin/projects")

	projects, err := env.queries.ListProjects(ctx)
	if err != nil || len(projects) != 1 {
		t.Fatalf("ListProjects = %v, %v", projects, err)
	}
	p := projects[0]
	if p.Slug != "launch-video" || !p.Featured {
		t.Errorf("created = %+v", p)
	}

	// duplicate slug
	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/projects", form: form, admin: editor()}, h.Create)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	form.Set("link", "not a url")
	rec = env.serve(t, request{method: http.MethodPost, pattern: "/admin/projects/edit/{id}",
		target: "/admin/projects/edit/" + itoa(p.ID), form: form, admin: editor()}, h.Update)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	form.Set("link", "https://example.com/launch")
	form.Del("featured")
	rec = env.serve(t, request{method: http.MethodPost, pattern: "/admin/projects/edit/{id}",
		target: "/admin/projects/edit/" + itoa(p.ID), form: form, admin: editor()}, h.Update)
	assertRedirect(t, rec, "/admin/projects")

	got, err := env.queries.GetProjectByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Featured || got.Link != "https://example.com/launch" {
		t.Errorf("updated = %+v", got)
	}

	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/projects/bulk-delete",
		form: url.Values{"ids": {itoa(p.ID)}}, admin: editor()}, h.BulkDelete)
	assertRedirect(t, rec, "/admin/projects")
	if n, _ := env.queries.CountProjects(ctx); n != 0 {
		t.Errorf("projects left = %d", n)
	}
}

func TestBlogHandler_CreateDraftAndSchedule(t *testing.T) {
	env := newTestEnv(t)
	h := NewBlogHandler(env.db, env.renderer, time.UTC)
	ctx := context.Background()

	draft := url.Values{"title": {"Five Reel Ideas"}, "content": {"# Ideas\n\nShort and punchy."}, "author": {"Lovelli Team"}}
	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/blog", form: draft, admin: editor()}, h.Create)
	assertRedirect(t, rec, "/admin/blog")

	scheduled := url.Values{"title": {"Next Year Trends"}, "content": {"Coming soon."}, "published_at": {"2099-01-02T09:30"}}
	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/blog", form: scheduled, admin: editor()}, h.Create)
	assertRedirect(t, rec, "/admin/blog")

	bad := url.Values{"title": {"Broken"}, "content": {"x"}, "published_at": {"tomorrow"}}
	rec = env.serve(t, request{method: http.MethodPost, target: "/admin/blog", form: bad, admin: editor()}, h.Create)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	posts, err := env.queries.ListBlogPosts(ctx)
	if err != nil || len(posts) != 2 {
		t.Fatalf("ListBlogPosts = %d, %v", len(posts), err)
	}
	for _, p := range posts {
		switch p.Slug {
		case "five-reel-ideas":
			if p.PublishedAt.Valid {
				t.Error("draft should have no publish time")
			}
		case "next-year-trends":
			want := time.Date(2099, 1, 2, 9, 30, 0, 0, time.UTC)
			if !p.PublishedAt.Valid || !p.PublishedAt.Time.Equal(want) {
				t.Errorf("published_at = %v, want %v", p.PublishedAt, want)
			}
		default:
			t.Errorf("unexpected slug %q", p.Slug)
		}
	}

	rec = env.serve(t, request{target: "/admin/blog", admin: viewer()}, h.List)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Draft", "Scheduled")

	published, err := env.queries.ListPublishedBlogPosts(ctx, storeListPublished(time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 0 {
		t.Errorf("published = %d, want 0", len(published))
	}
}

func TestBlogHandler_EditForm(t *testing.T) {
	env := newTestEnv(t)
	h := NewBlogHandler(env.db, env.renderer, time.UTC)

	rec := env.serve(t, request{method: http.MethodPost, target: "/admin/blog",
		form: url.Values{"title": {"Hello"}, "content": {"Body"}, "published_at": {"2024-05-01T08:00"}}, admin: editor()}, h.Create)
	assertRedirect(t, rec, "/admin/blog")
	posts, _ := env.queries.ListBlogPosts(context.Background())

	rec = env.serve(t, request{pattern: "/admin/blog/edit/{id}", target: "/admin/blog/edit/" + itoa(posts[0].ID), admin: editor()}, h.EditForm)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, `value="2024-05-01T08:00"`)

	rec = env.serve(t, request{pattern: "/admin/blog/edit/{id}", target: "/admin/blog/edit/abc", admin: editor()}, h.EditForm)
	assertRedirect(t, rec, "/admin/blog")
}
