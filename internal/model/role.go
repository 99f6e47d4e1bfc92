// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain vocabulary shared across packages:
// admin roles and applicant statuses.
package model

// Role is an admin role. Roles are ordered: each one includes the
// permissions of every role below it.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Roles lists every role from least to most privileged.
var Roles = []Role{RoleViewer, RoleEditor, RoleAdmin, RoleSuperAdmin}

// Level returns the ordinal rank of r. Unknown roles rank below viewer.
func (r Role) Level() int {
	switch r {
	case RoleViewer:
		return 0
	case RoleEditor:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	default:
		return -1
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Level() >= 0
}

// AtLeast reports whether r meets or exceeds min. An unknown role never
// satisfies anything, and nothing satisfies an unknown minimum.
func (r Role) AtLeast(min Role) bool {
	if !r.Valid() || !min.Valid() {
		return false
	}
	return r.Level() >= min.Level()
}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleViewer:
		return "Viewer"
	case RoleEditor:
		return "Editor"
	case RoleAdmin:
		return "Admin"
	case RoleSuperAdmin:
		return "Super Admin"
	default:
		return string(r)
	}
}
