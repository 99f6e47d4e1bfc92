// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lovelliph/Services/internal/content"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// ServicesHandler manages the services shown on the home page.
type ServicesHandler struct {
	db       *sql.DB
	queries  *store.Queries
	renderer *render.Renderer
	now      func() time.Time
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(db *sql.DB, renderer *render.Renderer) *ServicesHandler {
	return &ServicesHandler{
		db:       db,
		queries:  store.New(db),
		renderer: renderer,
		now:      time.Now,
	}
}

// ServicesListData holds data for the services list.
type ServicesListData struct {
	Services []store.Service
	Total    int
	Query    string
	// Reorderable is false while a search hides part of the list.
	Reorderable bool
}

// ServiceFormData holds data for the service editor.
type ServiceFormData struct {
	Form   content.ServiceForm
	Errors content.FieldErrors
	ID     int64
	IsEdit bool
}

// List handles GET /admin/services.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list services", "error", err)
		return
	}

	q := parseListQuery(r)
	renderPage(w, r, h.renderer, http.StatusOK, "admin/services", render.TemplateData{
		Title: "Services",
		Data: ServicesListData{
			Services:    content.FilterServices(services, q.Query),
			Total:       len(services),
			Query:       q.Query,
			Reorderable: q.Query == "",
		},
	})
}

func (h *ServicesHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data ServiceFormData) {
	title := "New Service"
	if data.IsEdit {
		title = "Edit Service"
	}
	renderPage(w, r, h.renderer, status, "admin/service_form", render.TemplateData{
		Title: title,
		Data:  data,
	})
}

// NewForm handles GET /admin/services/new.
func (h *ServicesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, ServiceFormData{})
}

// validate runs the form rules and the slug uniqueness check.
func (h *ServicesHandler) validate(r *http.Request, form content.ServiceForm, excludeID int64) (content.FieldErrors, error) {
	errs := content.Validate(form)
	if _, bad := errs["slug"]; bad {
		return errs, nil
	}
	exists, err := h.queries.ServiceSlugExists(r.Context(), form.Slug, excludeID)
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

// Create handles POST /admin/services. New services go to the end.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}
	form := content.NewServiceForm(formGetter(r))

	errs, err := h.validate(r, form, 0)
	if err != nil {
		logAndInternalError(w, r, "failed to validate service", "error", err)
		return
	}
	if errs != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, ServiceFormData{Form: form, Errors: errs})
		return
	}

	maxPos, err := h.queries.MaxServicePosition(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to read service positions", "error", err)
		return
	}

	svc, err := h.queries.CreateService(r.Context(), form.CreateParams(maxPos+1, h.now().UTC()))
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, ServiceFormData{Form: form, Errors: content.FieldErrors{"slug": content.MsgSlugInUse}})
			return
		}
		logAndInternalError(w, r, "failed to create service", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "service created", "service_id", svc.ID, "slug", svc.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service created successfully")
}

// EditForm handles GET /admin/services/edit/{id}.
func (h *ServicesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminServices, "Invalid service ID")
		return
	}
	svc, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminServices, "Service", id,
		func(id int64) (store.Service, error) { return h.queries.GetServiceByID(r.Context(), id) })
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, ServiceFormData{Form: content.ServiceFormFrom(svc), ID: id, IsEdit: true})
}

// Update handles POST /admin/services/edit/{id}.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminServices, "Invalid service ID")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}
	form := content.NewServiceForm(formGetter(r))
	data := ServiceFormData{Form: form, ID: id, IsEdit: true}

	errs, err := h.validate(r, form, id)
	if err != nil {
		logAndInternalError(w, r, "failed to validate service", "error", err)
		return
	}
	if errs != nil {
		data.Errors = errs
		h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if _, err := h.queries.UpdateService(r.Context(), form.UpdateParams(id, h.now().UTC())); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			flashError(w, r, h.renderer, redirectAdminServices, "Service not found")
		case store.IsUniqueViolation(err):
			data.Errors = content.FieldErrors{"slug": content.MsgSlugInUse}
			h.renderForm(w, r, http.StatusUnprocessableEntity, data)
		default:
			logAndInternalError(w, r, "failed to update service", "error", err, "service_id", id)
		}
		return
	}

	slog.InfoContext(r.Context(), "service updated", "service_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service updated successfully")
}

// Delete handles POST /admin/services/{id}/delete.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminServices, "Invalid service ID")
		return
	}
	if err := h.queries.DeleteService(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete service", "error", err, "service_id", id)
		flashError(w, r, h.renderer, redirectAdminServices, "Failed to delete service")
		return
	}
	slog.InfoContext(r.Context(), "service deleted", "service_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Service deleted successfully")
}

// BulkDelete handles POST /admin/services/bulk-delete with one statement.
func (h *ServicesHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}
	ids := parseIDList(r.PostForm["ids"])
	if len(ids) == 0 {
		flashError(w, r, h.renderer, redirectAdminServices, msgNothingChosen)
		return
	}
	n, err := h.queries.DeleteServices(r.Context(), ids)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to delete services", "error", err, "count", len(ids))
		flashError(w, r, h.renderer, redirectAdminServices, "Failed to delete services")
		return
	}
	slog.InfoContext(r.Context(), "services deleted", "count", n)
	flashSuccess(w, r, h.renderer, redirectAdminServices, fmt.Sprintf("%d service(s) deleted", n))
}

// ReorderRequest is the body of a reorder call: either a drag of one
// service onto another, or the complete new order.
type ReorderRequest struct {
	DraggedID int64   `json:"dragged_id"`
	TargetID  int64   `json:"target_id"`
	IDs       []int64 `json:"ids"`
}

// Reorder handles POST /admin/services/reorder. Positions are renumbered
// 1..N and only changed rows are written, all in one transaction.
func (h *ServicesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list services", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to reorder services")
		return
	}

	var ordered []store.Service
	var updates []store.ServiceOrderUpdate
	if len(req.IDs) > 0 {
		ordered, err = content.OrderFromIDs(services, req.IDs)
		if err == nil {
			ordered, updates = content.Renumber(ordered)
		}
	} else {
		ordered, updates, err = content.PlanReorder(services, req.DraggedID, req.TargetID)
	}
	if err != nil {
		writeJSONError(w, http.StatusConflict, "The list changed. Please reload and try again.")
		return
	}

	if err := store.ReorderServices(r.Context(), h.db, updates); err != nil {
		if errors.Is(err, store.ErrStaleOrder) {
			writeJSONError(w, http.StatusConflict, "The list changed. Please reload and try again.")
			return
		}
		slog.ErrorContext(r.Context(), "failed to reorder services", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to reorder services")
		return
	}

	order := make([]int64, len(ordered))
	for i, s := range ordered {
		order[i] = s.ID
	}
	slog.InfoContext(r.Context(), "services reordered", "changed", len(updates))
	writeJSONSuccess(w, map[string]any{"updated": len(updates), "order": order})
}
