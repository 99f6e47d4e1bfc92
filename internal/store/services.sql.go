// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const serviceColumns = `id, title, slug, description, long_description, image, icon, position, features, benefits, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (Service, error) {
	var i Service
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Description,
		&i.LongDescription,
		&i.Image,
		&i.Icon,
		&i.Position,
		&i.Features,
		&i.Benefits,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryServices(ctx context.Context, query string, args ...any) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Service
	for rows.Next() {
		i, err := scanService(rows)
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

const listServices = `SELECT ` + serviceColumns + ` FROM services ORDER BY position, id`

func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	return q.queryServices(ctx, listServices)
}

const countServices = `SELECT COUNT(*) FROM services`

func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countServices).Scan(&count)
	return count, err
}

const getServiceByID = `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`

func (q *Queries) GetServiceByID(ctx context.Context, id int64) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getServiceByID, id))
}

const getServiceBySlug = `SELECT ` + serviceColumns + ` FROM services WHERE slug = ?`

func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getServiceBySlug, slug))
}

const serviceSlugExists = `SELECT EXISTS(SELECT 1 FROM services WHERE slug = ? AND id != ?)`

// ServiceSlugExists reports whether another service (not excludeID) uses slug.
func (q *Queries) ServiceSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, serviceSlugExists, slug, excludeID).Scan(&exists)
	return exists, err
}

const maxServicePosition = `SELECT COALESCE(MAX(position), 0) FROM services`

func (q *Queries) MaxServicePosition(ctx context.Context) (int64, error) {
	var pos int64
	err := q.db.QueryRowContext(ctx, maxServicePosition).Scan(&pos)
	return pos, err
}

const createService = `INSERT INTO services (title, slug, description, long_description, image, icon, position, features, benefits, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + serviceColumns

type CreateServiceParams struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Image           string     `json:"image"`
	Icon            string     `json:"icon"`
	Position        int64      `json:"position"`
	Features        StringList `json:"features"`
	Benefits        StringList `json:"benefits"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, createService,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.LongDescription,
		arg.Image,
		arg.Icon,
		arg.Position,
		arg.Features,
		arg.Benefits,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanService(row)
}

const updateService = `UPDATE services
SET title = ?, slug = ?, description = ?, long_description = ?, image = ?, icon = ?, features = ?, benefits = ?, updated_at = ?
WHERE id = ?
RETURNING ` + serviceColumns

type UpdateServiceParams struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Image           string     `json:"image"`
	Icon            string     `json:"icon"`
	Features        StringList `json:"features"`
	Benefits        StringList `json:"benefits"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ID              int64      `json:"id"`
}

func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, updateService,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.LongDescription,
		arg.Image,
		arg.Icon,
		arg.Features,
		arg.Benefits,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanService(row)
}

const updateServicePosition = `UPDATE services SET position = ?, updated_at = ? WHERE id = ?`

type UpdateServicePositionParams struct {
	Position  int64     `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

// UpdateServicePosition returns the number of rows changed.
func (q *Queries) UpdateServicePosition(ctx context.Context, arg UpdateServicePositionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateServicePosition, arg.Position, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteService = `DELETE FROM services WHERE id = ?`

func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteService, id)
	return err
}

// DeleteServices removes every service in ids with a single statement.
func (q *Queries) DeleteServices(ctx context.Context, ids []int64) (int64, error) {
	return q.deleteByIDs(ctx, "services", ids)
}
