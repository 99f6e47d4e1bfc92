// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/lovelliph/Services/internal/apply"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/session"
	"github.com/lovelliph/Services/internal/site"
	"github.com/lovelliph/Services/internal/util"
)

// maxFormIDLength bounds the client key used for debouncing.
const maxFormIDLength = 64

// ApplyHandler serves the careers application form.
type ApplyHandler struct {
	service        *apply.Service
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	trustedProxies []string
	redirectDelay  time.Duration
	debounce       time.Duration
}

// NewApplyHandler creates a new ApplyHandler. redirectDelay is how long the
// confirmation stays on screen before the browser returns home; debounce is
// how long the page waits after typing before checking a field.
func NewApplyHandler(svc *apply.Service, renderer *render.Renderer, sm *scs.SessionManager, trustedProxies []string, redirectDelay, debounce time.Duration) *ApplyHandler {
	return &ApplyHandler{
		service:        svc,
		renderer:       renderer,
		sessionManager: sm,
		trustedProxies: trustedProxies,
		redirectDelay:  redirectDelay,
		debounce:       debounce,
	}
}

// ApplyFormData holds data for the application page.
type ApplyFormData struct {
	FormID    string
	Fields    apply.Fields
	Errors    map[string]string
	Banner    string
	Positions []string
	Careers   site.Careers

	// DebounceMS drives the page's field check delay.
	DebounceMS int64

	Submitted       bool
	Reference       string
	RedirectSeconds int
}

func (h *ApplyHandler) formData(fields apply.Fields) ApplyFormData {
	return ApplyFormData{
		FormID:    uuid.NewString(),
		Fields:    fields,
		Positions: apply.Positions,
		Careers:   site.Home().Careers,

		DebounceMS: h.debounce.Milliseconds(),
	}
}

func (h *ApplyHandler) render(w http.ResponseWriter, r *http.Request, status int, data ApplyFormData) {
	renderPage(w, r, h.renderer, status, "public/apply", render.TemplateData{
		Title:       "Join Our Team | Lovelli",
		Description: data.Careers.Text,
		Data:        data,
	})
}

// ApplyForm handles GET /apply. Right after a successful submission it
// shows the confirmation, which returns to the home page on its own.
func (h *ApplyHandler) ApplyForm(w http.ResponseWriter, r *http.Request) {
	data := h.formData(apply.Fields{Position: r.URL.Query().Get("position")})

	if ref := h.sessionManager.PopString(r.Context(), session.KeyApplyResult); ref != "" {
		data.Submitted = true
		data.Reference = ref
		data.RedirectSeconds = int(math.Ceil(h.redirectDelay.Seconds()))
	}

	h.render(w, r, http.StatusOK, data)
}

// ApplySubmit handles POST /apply.
func (h *ApplyHandler) ApplySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		data := h.formData(apply.Fields{})
		data.Banner = apply.MsgSubmissionFailed
		h.render(w, r, http.StatusBadRequest, data)
		return
	}

	fields := apply.FieldsFromForm(formGetter(r))
	applicant, err := h.service.Submit(r.Context(), apply.Submission{
		Fields:    fields,
		RequestIP: util.ClientIP(r, h.trustedProxies),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		data := h.formData(fields)
		data.Fields.Honeypot = ""
		data.Banner = apply.UserMessage(err)

		var validationErr *apply.ValidationError
		status := http.StatusInternalServerError
		switch {
		case errors.As(err, &validationErr):
			data.Errors = validationErr.Fields
			status = http.StatusUnprocessableEntity
		case errors.Is(err, apply.ErrBotDetected):
			status = http.StatusBadRequest
		case errors.Is(err, apply.ErrAlreadyApplied):
			status = http.StatusConflict
		case errors.Is(err, apply.ErrRateLimited):
			status = http.StatusTooManyRequests
		}
		h.render(w, r, status, data)
		return
	}

	// Post/Redirect/Get so a reload cannot resubmit
	h.sessionManager.Put(r.Context(), session.KeyApplyResult, applicant.Reference)
	http.Redirect(w, r, RouteApply, http.StatusSeeOther)
}

// ApplyValidate handles POST /apply/validate. It answers the debounced
// check of one field as JSON; a check superseded by a newer one for the
// same field returns {"superseded": true}.
func (h *ApplyHandler) ApplyValidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidForm)
		return
	}

	field := r.PostFormValue("field")
	if !apply.IsKnownField(field) {
		writeJSONError(w, http.StatusBadRequest, "Unknown field")
		return
	}

	key := strings.TrimSpace(r.PostFormValue("form_id"))
	if key == "" || len(key) > maxFormIDLength {
		key = util.ClientIP(r, h.trustedProxies)
	}

	res := h.service.CheckField(r.Context(), key, field, r.PostFormValue("value"))
	if r.Context().Err() != nil {
		slog.DebugContext(r.Context(), "field check abandoned", "field", field)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
