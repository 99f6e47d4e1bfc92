// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lovelliph/Services/internal/content"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// BlogHandler manages blog posts.
type BlogHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	loc      *time.Location
	now      func() time.Time
}

// NewBlogHandler creates a new BlogHandler. Publish times entered in the
// editor are interpreted in loc.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer, loc *time.Location) *BlogHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BlogHandler{
		queries:  store.New(db),
		renderer: renderer,
		loc:      loc,
		now:      time.Now,
	}
}

// BlogListData holds data for the blog list.
type BlogListData struct {
	Posts []store.BlogPost
	Total int
	Query string
	Now   time.Time
}

// BlogPostFormData holds data for the post editor.
type BlogPostFormData struct {
	Form   content.BlogPostForm
	Errors content.FieldErrors
	ID     int64
	IsEdit bool
}

// List handles GET /admin/blog.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListBlogPosts(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list blog posts", "error", err)
		return
	}

	q := parseListQuery(r)
	renderPage(w, r, h.renderer, http.StatusOK, "admin/blog", render.TemplateData{
		Title: "Blog",
		Data: BlogListData{
			Posts: content.FilterBlogPosts(posts, q.Query),
			Total: len(posts),
			Query: q.Query,
			Now:   h.now(),
		},
	})
}

func (h *BlogHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data BlogPostFormData) {
	title := "New Post"
	if data.IsEdit {
		title = "Edit Post"
	}
	renderPage(w, r, h.renderer, status, "admin/blog_form", render.TemplateData{
		Title: title,
		Data:  data,
	})
}

// NewForm handles GET /admin/blog/new.
func (h *BlogHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, BlogPostFormData{})
}

func (h *BlogHandler) validate(r *http.Request, form content.BlogPostForm, excludeID int64) (content.FieldErrors, error) {
	errs := content.Validate(form)
	if _, bad := errs["slug"]; bad {
		return errs, nil
	}
	exists, err := h.queries.BlogPostSlugExists(r.Context(), form.Slug, excludeID)
	if err != nil {
		return nil, fmt.Errorf("checking slug: %w", err)
	}
	if exists {
		if errs == nil {
			errs = content.FieldErrors{}
		}
		errs["slug"] = content.MsgSlugInUse
	}
	return errs, nil
}

// Create handles POST /admin/blog.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminBlog) {
		return
	}
	form := content.NewBlogPostForm(formGetter(r))

	errs, err := h.validate(r, form, 0)
	if err != nil {
		logAndInternalError(w, r, "failed to validate blog post", "error", err)
		return
	}
	if errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, BlogPostFormData{Form: form, Errors: errs})
		return
	}

	p, err := h.queries.CreateBlogPost(r.Context(), form.CreateParams(h.now().UTC(), h.loc))
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, BlogPostFormData{Form: form, Errors: content.FieldErrors{"slug": content.MsgSlugInUse}})
			return
		}
		logAndInternalError(w, r, "failed to create blog post", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "blog post created", "post_id", p.ID, "slug", p.Slug, "published", p.PublishedAt.Valid)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, "Post created successfully")
}

// EditForm handles GET /admin/blog/edit/{id}.
func (h *BlogHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminBlog, "Invalid post ID")
		return
	}
	p, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminBlog, "Post", id,
		func(id int64) (store.BlogPost, error) { return h.queries.GetBlogPostByID(r.Context(), id) })
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, BlogPostFormData{Form: content.BlogPostFormFrom(p, h.loc), ID: id, IsEdit: true})
}

// Update handles POST /admin/blog/edit/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminBlog, "Invalid post ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminBlog) {
		return
	}
	form := content.NewBlogPostForm(formGetter(r))
	data := BlogPostFormData{Form: form, ID: id, IsEdit: true}

	errs, err := h.validate(r, form, id)
	if err != nil {
		logAndInternalError(w, r, "failed to validate blog post", "error", err)
		return
	}
	if errs != nil {
		data.Errors = errs
		h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if _, err := h.queries.UpdateBlogPost(r.Context(), form.UpdateParams(id, h.now().UTC(), h.loc)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			flashError(w, r, h.renderer, redirectAdminBlog, "Post not found")
		case store.IsUniqueViolation(err):
			data.Errors = content.FieldErrors{"slug": content.MsgSlugInUse}
			h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		default:
			logAndInternalError(w, r, "failed to update blog post", "error", err, "post_id", id)
		}
		return
	}

	slog.InfoContext(r.Context(), "blog post updated", "post_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, "Post updated successfully")
}

// Delete handles POST /admin/blog/{id}/delete.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminBlog, "Invalid post ID")
		return
	}
	if err := h.queries.DeleteBlogPost(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete blog post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, redirectAdminBlog, "Failed to delete post")
		return
	}
	slog.InfoContext(r.Context(), "blog post deleted", "post_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, "Post deleted successfully")
}

// BulkDelete handles POST /admin/blog/bulk-delete.
func (h *BlogHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminBlog) {
		return
	}
	ids := parseIDList(r.PostForm["ids"])
	if len(ids) == 0 {
		flashError(w, r, h.renderer, redirectAdminBlog, msgNothingChosen)
		return
	}
	n, err := h.queries.DeleteBlogPosts(r.Context(), ids)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to delete blog posts", "error", err, "count", len(ids))
		flashError(w, r, h.renderer, redirectAdminBlog, "Failed to delete posts")
		return
	}
	slog.InfoContext(r.Context(), "blog posts deleted", "count", n)
	flashSuccess(w, r, h.renderer, redirectAdminBlog, fmt.Sprintf("%d post(s) deleted", n))
}
