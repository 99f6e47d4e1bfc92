// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const adminUserColumns = `id, email, name, password_hash, role, is_active, last_login_at, created_at, updated_at`

func scanAdminUser(row interface{ Scan(...any) error }) (AdminUser, error) {
	var i AdminUser
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLoginAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const countAdminUsers = `SELECT COUNT(*) FROM admin_users`

func (q *Queries) CountAdminUsers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countAdminUsers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAdminUser = `INSERT INTO admin_users (email, name, password_hash, role, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + adminUserColumns

type CreateAdminUserParams struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (AdminUser, error) {
	row := q.db.QueryRowContext(ctx, createAdminUser,
		arg.Email,
		arg.Name,
		arg.PasswordHash,
		arg.Role,
		arg.IsActive,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanAdminUser(row)
}

const getAdminUserByEmail = `SELECT ` + adminUserColumns + ` FROM admin_users WHERE email = ?`

func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx, getAdminUserByEmail, email))
}

const getAdminUserByID = `SELECT ` + adminUserColumns + ` FROM admin_users WHERE id = ?`

func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx, getAdminUserByID, id))
}

const listAdminUsers = `SELECT ` + adminUserColumns + ` FROM admin_users ORDER BY created_at, id`

func (q *Queries) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := q.db.QueryContext(ctx, listAdminUsers)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []AdminUser
	for rows.Next() {
		i, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateAdminUserRole = `UPDATE admin_users SET role = ?, updated_at = ? WHERE id = ?`

type UpdateAdminUserRoleParams struct {
	Role      string    `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) UpdateAdminUserRole(ctx context.Context, arg UpdateAdminUserRoleParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminUserRole, arg.Role, arg.UpdatedAt, arg.ID)
	return err
}

const setAdminUserActive = `UPDATE admin_users SET is_active = ?, updated_at = ? WHERE id = ?`

type SetAdminUserActiveParams struct {
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) SetAdminUserActive(ctx context.Context, arg SetAdminUserActiveParams) error {
	_, err := q.db.ExecContext(ctx, setAdminUserActive, arg.IsActive, arg.UpdatedAt, arg.ID)
	return err
}

const updateAdminUserPassword = `UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ?`

type UpdateAdminUserPasswordParams struct {
	PasswordHash string    `json:"password_hash"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           int64     `json:"id"`
}

func (q *Queries) UpdateAdminUserPassword(ctx context.Context, arg UpdateAdminUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminUserPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

const updateAdminLastLogin = `UPDATE admin_users SET last_login_at = ? WHERE id = ?`

type UpdateAdminLastLoginParams struct {
	LastLoginAt sql.NullTime `json:"last_login_at"`
	ID          int64        `json:"id"`
}

func (q *Queries) UpdateAdminLastLogin(ctx context.Context, arg UpdateAdminLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminLastLogin, arg.LastLoginAt, arg.ID)
	return err
}
