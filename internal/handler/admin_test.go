// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"
)

func TestAdminHandler_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	env.createService(t, "Web Development", "web-development", 1)
	env.createService(t, "Branding", "branding", 2)
	env.createProject(t, "Harbor Cafe", "harbor-cafe", "Branding", true)
	env.createApplicant(t, "Ana Cruz", "ana@example.com", "new")
	h := NewAdminHandler(env.db, env.renderer)

	rec := env.serve(t, request{target: "/admin", admin: viewer()}, h.Dashboard)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec,
		`<span class="stat__value">2</span><span class="stat__label">Services</span>`,
		`<span class="stat__value">1</span><span class="stat__label">Projects</span>`,
		`<span class="stat__value">0</span><span class="stat__label">Blog posts</span>`,
		"Ana Cruz",
	)
}

func TestAdminHandler_DashboardEmpty(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdminHandler(env.db, env.renderer)

	rec := env.serve(t, request{target: "/admin", admin: viewer()}, h.Dashboard)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "No applications yet.")
}
