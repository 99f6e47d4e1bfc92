// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/lovelliph/Services/internal/apply"
	"github.com/lovelliph/Services/internal/iplookup"
	"github.com/lovelliph/Services/internal/ratelimit"
	"github.com/lovelliph/Services/internal/session"
	"github.com/lovelliph/Services/internal/testutil"
)

func newApplyHandler(env *testEnv, maxPerWindow int) *ApplyHandler {
	svc := apply.NewService(apply.Config{
		Store:    env.queries,
		Limiter:  ratelimit.NewStoreChecker(env.queries, ratelimit.Limits{Max: maxPerWindow, Window: time.Hour}),
		Resolver: iplookup.NewResolver(nil),
		Debounce: time.Millisecond,
		Window:   time.Hour,
		Logger:   testutil.TestLoggerSilent(),
	})
	return NewApplyHandler(svc, env.renderer, env.sm, nil, 3*time.Second, 300*time.Millisecond)
}

func applicationForm(email string) url.Values {
	return url.Values{
		"name":             {"Maria Santos"},
		"email":            {email},
		"phone":            {"+63 917 123 4567"},
		"position":         {"Graphic Designer"},
		"experience_years": {"4"},
		"website_url":      {"https://maria.example.com"},
		"message":          {strings.Repeat("I love designing brands. ", 3)},
	}
}

func TestApplyHandler_Form(t *testing.T) {
	env := newTestEnv(t)
	h := newApplyHandler(env, 3)

	rec := env.serve(t, request{pattern: "/apply", target: "/apply?position=Video+Editor"}, h.ApplyForm)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, `name="form_id"`, `<option value="Video Editor" selected>`, `name="honeypot"`, `data-debounce-ms="300"`)
	if contains(rec.Body.String(), "http-equiv=\"refresh\"") {
		t.Error("form page should not redirect")
	}
}

func TestApplyHandler_SubmitSuccess(t *testing.T) {
	env := newTestEnv(t)
	h := newApplyHandler(env, 3)

	rec := env.serve(t, request{method: http.MethodPost, target: "/apply", form: applicationForm("Maria@Example.com ")}, h.ApplySubmit)
	assertRedirect(t, rec, "/apply")

	a, err := env.queries.GetApplicantByEmail(context.Background(), "maria@example.com")
	if err != nil {
		t.Fatalf("applicant not stored: %v", err)
	}
	if a.Status != "new" || a.Reference == "" || !a.ExperienceYears.Valid || a.ExperienceYears.Int64 != 4 {
		t.Errorf("stored applicant = %+v", a)
	}

	// the confirmation reads the reference the submit left in the session
	rec = env.serve(t, request{target: "/apply", session: map[string]any{session.KeyApplyResult: a.Reference}}, h.ApplyForm)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, a.Reference, `content="3;url=/"`, `data-redirect-home="3"`)
}

func TestApplyHandler_SubmitRejections(t *testing.T) {
	env := newTestEnv(t)
	h := newApplyHandler(env, 2)
	submit := func(form url.Values) int {
		return env.serve(t, request{method: http.MethodPost, target: "/apply", form: form}, h.ApplySubmit).Code
	}

	bot := applicationForm("bot@example.com")
	bot.Set("honeypot", "http://spam.example")
	if code := submit(bot); code != http.StatusBadRequest {
		t.Errorf("honeypot: status = %d, want 400", code)
	}

	invalid := applicationForm("not-an-email")
	invalid.Set("message", "too short")
	rec := env.serve(t, request{method: http.MethodPost, target: "/apply", form: invalid}, h.ApplySubmit)
	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec, apply.MsgFixErrors, "Please enter a valid email address", "Message must be at least 50 characters")

	if code := submit(applicationForm("first@example.com")); code != http.StatusSeeOther {
		t.Fatalf("first: status = %d", code)
	}
	if code := submit(applicationForm("FIRST@example.com")); code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", code)
	}
	if code := submit(applicationForm("second@example.com")); code != http.StatusSeeOther {
		t.Fatalf("second: status = %d", code)
	}
	if code := submit(applicationForm("third@example.com")); code != http.StatusTooManyRequests {
		t.Errorf("over limit: status = %d, want 429", code)
	}

	n, err := env.queries.CountApplicants(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("applicants = %d, want 2", n)
	}
}

func TestApplyHandler_Validate(t *testing.T) {
	env := newTestEnv(t)
	h := newApplyHandler(env, 3)
	if code := env.serve(t, request{method: http.MethodPost, target: "/apply", form: applicationForm("taken@example.com")}, h.ApplySubmit).Code; code != http.StatusSeeOther {
		t.Fatalf("seed submit status = %d", code)
	}

	check := func(field, value string) (int, apply.FieldResult) {
		rec := env.serve(t, request{method: http.MethodPost, target: "/apply/validate",
			form: url.Values{"form_id": {"f-1"}, "field": {field}, "value": {value}}}, h.ApplyValidate)
		var res apply.FieldResult
		if rec.Code == http.StatusOK {
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decoding %q: %v", rec.Body.String(), err)
			}
		}
		return rec.Code, res
	}

	code, res := check("phone", "123")
	if code != http.StatusOK || res.Error == "" || res.Field != "phone" {
		t.Errorf("short phone: %d %+v", code, res)
	}

	code, res = check("email", "taken@example.com")
	if code != http.StatusOK || !res.Blocked || res.Warning == "" {
		t.Errorf("existing email: %d %+v", code, res)
	}

	code, res = check("email", "fresh@example.com")
	if code != http.StatusOK || res.Blocked || res.Error != "" {
		t.Errorf("fresh email: %d %+v", code, res)
	}

	if code, _ = check("honeypot", "x"); code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", code)
	}
}
