// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteServiceSlug is the public service detail page.
	RouteServiceSlug = "/services/{slug}"

	RouteRobots  = "/robots.txt"
	RouteSitemap = "/sitemap.xml"

	// RouteApply is the careers application form.
	RouteApply = "/apply"
	// RouteApplyValidate answers debounced field checks.
	RouteApplyValidate = "/apply/validate"
	// RouteContact receives the home page inquiry form.
	RouteContact = "/contact"

	// RouteAdmin is the dashboard root.
	RouteAdmin = "/admin"

	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"

	RouteServices   = "/services"
	RouteProjects   = "/projects"
	RouteBlog       = "/blog"
	RouteApplicants = "/applicants"
	RouteInquiries  = "/inquiries"
	RouteUsers      = "/users"

	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the edit form and update target.
	RouteSuffixEdit = "/edit/{id}"
	// RouteSuffixDelete deletes one row.
	RouteSuffixDelete = "/{id}/delete"
	// RouteSuffixBulkDelete deletes the checked rows in one call.
	RouteSuffixBulkDelete = "/bulk-delete"
	// RouteSuffixReorder is the suffix for reorder routes.
	RouteSuffixReorder = "/reorder"

	RouteSuffixView   = "/{id}"
	RouteSuffixStatus = "/{id}/status"
	RouteSuffixRead   = "/{id}/read"
	RouteSuffixRole   = "/{id}/role"
	RouteSuffixActive = "/{id}/active"

	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
	RouteMetrics     = "/metrics"
)

const (
	redirectAdmin           = RouteAdmin
	redirectLogin           = RouteAdmin + RouteLogin
	redirectForgotPassword  = RouteAdmin + RouteForgotPassword
	redirectAdminServices   = RouteAdmin + RouteServices
	redirectAdminProjects   = RouteAdmin + RouteProjects
	redirectAdminBlog       = RouteAdmin + RouteBlog
	redirectAdminApplicants = RouteAdmin + RouteApplicants
	redirectAdminInquiries  = RouteAdmin + RouteInquiries
	redirectAdminUsers      = RouteAdmin + RouteUsers
	redirectContact         = "/#contact"
)

// Shared user-facing messages.
const (
	msgInvalidForm   = "Invalid form data"
	msgNothingChosen = "No items selected"
	msgContactThanks = "Thank you! We'll get back to you soon."
	msgInvalidID     = "Invalid ID"
)
