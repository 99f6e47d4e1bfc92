// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// ApplicantsHandler shows and triages career applications.
type ApplicantsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewApplicantsHandler creates a new ApplicantsHandler.
func NewApplicantsHandler(db *sql.DB, renderer *render.Renderer) *ApplicantsHandler {
	return &ApplicantsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ApplicantsListData holds data for the applicants list.
type ApplicantsListData struct {
	Applicants []store.Applicant
	Statuses   []model.ApplicantStatus
	Status     string
}

// ApplicantData holds data for one application.
type ApplicantData struct {
	Applicant store.Applicant
	Statuses  []model.ApplicantStatus
}

// List handles GET /admin/applicants. ?status= narrows the list; unknown
// values show everything.
func (h *ApplicantsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if !model.ApplicantStatus(status).Valid() {
		status = ""
	}

	applicants, err := h.queries.ListApplicants(r.Context(), status)
	if err != nil {
		logAndInternalError(w, r, "failed to list applicants", "error", err)
		return
	}

	renderPage(w, r, h.renderer, http.StatusOK, "admin/applicants", render.TemplateData{
		Title: "Applicants",
		Data: ApplicantsListData{
			Applicants: applicants,
			Statuses:   model.ApplicantStatuses,
			Status:     status,
		},
	})
}

// View handles GET /admin/applicants/{id}.
func (h *ApplicantsHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminApplicants, msgInvalidID)
		return
	}
	a, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminApplicants, "Applicant", id,
		func(id int64) (store.Applicant, error) { return h.queries.GetApplicantByID(r.Context(), id) })
	if !ok {
		return
	}
	renderPage(w, r, h.renderer, http.StatusOK, "admin/applicant", render.TemplateData{
		Title: a.Name,
		Data:  ApplicantData{Applicant: a, Statuses: model.ApplicantStatuses},
	})
}

// UpdateStatus handles POST /admin/applicants/{id}/status.
func (h *ApplicantsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminApplicants, msgInvalidID)
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminApplicants) {
		return
	}
	status := model.ApplicantStatus(strings.TrimSpace(r.PostFormValue("status")))
	if !status.Valid() {
		flashError(w, r, h.renderer, redirectAdminApplicants, "Invalid status")
		return
	}

	if err := h.queries.UpdateApplicantStatus(r.Context(), store.UpdateApplicantStatusParams{
		Status: string(status),
		ID:     id,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to update applicant status", "error", err, "applicant_id", id)
		flashError(w, r, h.renderer, redirectAdminApplicants, "Failed to update status")
		return
	}

	slog.InfoContext(r.Context(), "applicant status updated", "applicant_id", id, "status", status)
	flashSuccess(w, r, h.renderer, redirectAdminApplicants, "Status updated")
}

// Delete handles POST /admin/applicants/{id}/delete.
func (h *ApplicantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminApplicants, msgInvalidID)
		return
	}
	if err := h.queries.DeleteApplicant(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete applicant", "error", err, "applicant_id", id)
		flashError(w, r, h.renderer, redirectAdminApplicants, "Failed to delete applicant")
		return
	}
	slog.InfoContext(r.Context(), "applicant deleted", "applicant_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminApplicants, "Applicant deleted")
}
