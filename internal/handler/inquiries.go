// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// InquiriesHandler lists contact form messages.
type InquiriesHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewInquiriesHandler creates a new InquiriesHandler.
func NewInquiriesHandler(db *sql.DB, renderer *render.Renderer) *InquiriesHandler {
	return &InquiriesHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// InquiriesListData holds data for the inquiries list.
type InquiriesListData struct {
	Inquiries []store.ContactInquiry
	Unread    int
}

// List handles GET /admin/inquiries.
func (h *InquiriesHandler) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.queries.ListContactInquiries(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list inquiries", "error", err)
		return
	}
	unread := 0
	for _, inq := range inquiries {
		if !inq.IsRead {
			unread++
		}
	}
	renderPage(w, r, h.renderer, http.StatusOK, "admin/inquiries", render.TemplateData{
		Title: "Inquiries",
		Data:  InquiriesListData{Inquiries: inquiries, Unread: unread},
	})
}

// MarkRead handles POST /admin/inquiries/{id}/read.
func (h *InquiriesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminInquiries, msgInvalidID)
		return
	}
	if err := h.queries.MarkInquiryRead(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to mark inquiry read", "error", err, "inquiry_id", id)
		flashError(w, r, h.renderer, redirectAdminInquiries, "Failed to update inquiry")
		return
	}
	http.Redirect(w, r, redirectAdminInquiries, http.StatusSeeOther)
}
