// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lovelliph/Services/internal/auth"
	"github.com/lovelliph/Services/internal/content"
	"github.com/lovelliph/Services/internal/middleware"
	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/store"
)

// UsersHandler manages dashboard accounts.
type UsersHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	now      func() time.Time
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer) *UsersHandler {
	return &UsersHandler{
		queries:  store.New(db),
		renderer: renderer,
		now:      time.Now,
	}
}

// UsersListData holds data for the accounts page, which also carries the
// create form.
type UsersListData struct {
	Users  []store.AdminUser
	Roles  []model.Role
	Form   content.AdminUserForm
	Errors content.FieldErrors
}

func (h *UsersHandler) render(w http.ResponseWriter, r *http.Request, status int, data UsersListData) {
	users, err := h.queries.ListAdminUsers(r.Context())
	if err != nil {
		logAndInternalError(w, r, "failed to list admin users", "error", err)
		return
	}
	data.Users = users
	data.Roles = model.Roles
	renderPage(w, r, h.renderer, status, "admin/users", render.TemplateData{
		Title: "Users",
		Data:  data,
	})
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, UsersListData{Form: content.AdminUserForm{Role: string(model.RoleEditor)}})
}

// Create handles POST /admin/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}
	form := content.NewAdminUserForm(formGetter(r))
	if errs := content.Validate(form); errs != nil {
		form.Password = ""
		h.render(w, r, http.StatusUnprocessableEntity, UsersListData{Form: form, Errors: errs})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		logAndInternalError(w, r, "failed to hash password", "error", err)
		return
	}

	now := h.now().UTC()
	user, err := h.queries.CreateAdminUser(r.Context(), store.CreateAdminUserParams{
		Email:        form.Email,
		Name:         form.Name,
		PasswordHash: hash,
		Role:         form.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			form.Password = ""
			h.render(w, r, http.StatusUnprocessableEntity, UsersListData{
				Form:   form,
				Errors: content.FieldErrors{"email": "An account with this email already exists"},
			})
			return
		}
		logAndInternalError(w, r, "failed to create admin user", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "admin user created", "user_id", user.ID, "role", user.Role)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User created successfully")
}

// targetOther parses {id} and refuses the caller's own account, so nobody
// can lock themselves out of the user screen.
func (h *UsersHandler) targetOther(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := parseIDParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminUsers, msgInvalidID)
		return 0, false
	}
	if self := middleware.GetAdmin(r); self != nil && self.ID == id {
		flashError(w, r, h.renderer, redirectAdminUsers, "You cannot change your own account here")
		return 0, false
	}
	return id, true
}

// UpdateRole handles POST /admin/users/{id}/role.
func (h *UsersHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetOther(w, r)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}
	role := model.Role(strings.TrimSpace(r.PostFormValue("role")))
	if !role.Valid() {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid role")
		return
	}

	if err := h.queries.UpdateAdminUserRole(r.Context(), store.UpdateAdminUserRoleParams{
		Role:      string(role),
		UpdatedAt: h.now().UTC(),
		ID:        id,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to update role", "error", err, "user_id", id)
		flashError(w, r, h.renderer, redirectAdminUsers, "Failed to update role")
		return
	}

	slog.InfoContext(r.Context(), "admin role updated", "user_id", id, "role", role)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Role updated to "+role.Label())
}

// SetActive handles POST /admin/users/{id}/active with active=1 or active=0.
func (h *UsersHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.targetOther(w, r)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}
	active := r.PostFormValue("active") == "1"

	if err := h.queries.SetAdminUserActive(r.Context(), store.SetAdminUserActiveParams{
		IsActive:  active,
		UpdatedAt: h.now().UTC(),
		ID:        id,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to update account state", "error", err, "user_id", id)
		flashError(w, r, h.renderer, redirectAdminUsers, "Failed to update user")
		return
	}

	slog.InfoContext(r.Context(), "admin account state changed", "user_id", id, "active", active)
	msg := "User deactivated"
	if active {
		msg = "User activated"
	}
	flashSuccess(w, r, h.renderer, redirectAdminUsers, msg)
}
