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

// ProjectsHandler manages portfolio projects.
type ProjectsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	now      func() time.Time
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(db *sql.DB, renderer *render.Renderer) *ProjectsHandler {
	return &ProjectsHandler{
		queries:  store.New(db),
		renderer: renderer,
		now:      time.Now,
	}
}

// ProjectsListData holds data for the projects list.
type ProjectsListData struct {
	Projects   []store.Project
	Categories []string
	Total      int
	Query      string
	Category   string
}

// ProjectFormData holds data for the project editor.
type ProjectFormData struct {
	Form   content.ProjectForm
	Errors content.FieldErrors
	ID     int64
	IsEdit bool
}

// List handles GET /admin/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list projects", "error", err)
		return
	}

	q := parseListQuery(r)
	renderPage(w, r, h.renderer, http.StatusOK, "admin/projects", render.TemplateData{
		Title: "Projects",
		Data: ProjectsListData{
			Projects:   content.FilterProjects(projects, q.Query, q.Category),
			Categories: content.Categories(projects),
			Total:      len(projects),
			Query:      q.Query,
			Category:   q.Category,
		},
	})
}

func (h *ProjectsHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data ProjectFormData) {
	title := "New Project"
	if data.IsEdit {
		title = "Edit Project"
	}
	renderPage(w, r, h.renderer, status, "admin/project_form", render.TemplateData{
		Title: title,
		Data:  data,
	})
}

// NewForm handles GET /admin/projects/new.
func (h *ProjectsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, ProjectFormData{})
}

func (h *ProjectsHandler) validate(r *http.Request, form content.ProjectForm, excludeID int64) (content.FieldErrors, error) {
	errs := content.Validate(form)
	if _, bad := errs["slug"]; bad {
		return errs, nil
	}
	exists, err := h.queries.ProjectSlugExists(r.Context(), form.Slug, excludeID)
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

// Create handles POST /admin/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminProjects) {
		return
	}
	form := content.NewProjectForm(formGetter(r))

	errs, err := h.validate(r, form, 0)
	if err != nil {
		logAndInternalError(w, r, "failed to validate project", "error", err)
		return
	}
	if errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, ProjectFormData{Form: form, Errors: errs})
		return
	}

	p, err := h.queries.CreateProject(r.Context(), form.CreateParams(h.now().UTC()))
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, ProjectFormData{Form: form, Errors: content.FieldErrors{"slug": content.MsgSlugInUse}})
			return
		}
		logAndInternalError(w, r, "failed to create project", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "project created", "project_id", p.ID, "slug", p.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project created successfully")
}

// EditForm handles GET /admin/projects/edit/{id}.
func (h *ProjectsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, "Invalid project ID")
		return
	}
	p, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminProjects, "Project", id,
		func(id int64) (store.Project, error) { return h.queries.GetProjectByID(r.Context(), id) })
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, ProjectFormData{Form: content.ProjectFormFrom(p), ID: id, IsEdit: true})
}

// Update handles POST /admin/projects/edit/{id}.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, "Invalid project ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminProjects) {
		return
	}
	form := content.NewProjectForm(formGetter(r))
	data := ProjectFormData{Form: form, ID: id, IsEdit: true}

	errs, err := h.validate(r, form, id)
	if err != nil {
		logAndInternalError(w, r, "failed to validate project", "error", err)
		return
	}
	if errs != nil {
		data.Errors = errs
		h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if _, err := h.queries.UpdateProject(r.Context(), form.UpdateParams(id, h.now().UTC())); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			flashError(w, r, h.renderer, redirectAdminProjects, "Project not found")
		case store.IsUniqueViolation(err):
			data.Errors = content.FieldErrors{"slug": content.MsgSlugInUse}
			h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		default:
			logAndInternalError(w, r, "failed to update project", "error", err, "project_id", id)
		}
		return
	}

	slog.InfoContext(r.Context(), "project updated", "project_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project updated successfully")
}

// Delete handles POST /admin/projects/{id}/delete.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminProjects, "Invalid project ID")
		return
	}
	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete project", "error", err, "project_id", id)
		flashError(w, r, h.renderer, redirectAdminProjects, "Failed to delete project")
		return
	}
	slog.InfoContext(r.Context(), "project deleted", "project_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Project deleted successfully")
}

// BulkDelete handles POST /admin/projects/bulk-delete.
func (h *ProjectsHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminProjects) {
		return
	}
	ids := parseIDList(r.PostForm["ids"])
	if len(ids) == 0 {
		flashError(w, r, h.renderer, redirectAdminProjects, msgNothingChosen)
		return
	}
	n, err := h.queries.DeleteProjects(r.Context(), ids)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to delete projects", "error", err, "count", len(ids))
		flashError(w, r, h.renderer, redirectAdminProjects, "Failed to delete projects")
		return
	}
	slog.InfoContext(r.Context(), "projects deleted", "count", n)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, fmt.Sprintf("%d project(s) deleted", n))
}
