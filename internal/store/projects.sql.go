// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const projectColumns = `id, title, slug, description, image, category, client, link, featured, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (Project, error) {
	var i Project
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Description,
		&i.Image,
		&i.Category,
		&i.Client,
		&i.Link,
		&i.Featured,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryProjects(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Project
	for rows.Next() {
		i, err := scanProject(rows)
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

const listProjects = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	return q.queryProjects(ctx, listProjects)
}

const listFeaturedProjects = `SELECT ` + projectColumns + ` FROM projects WHERE featured = 1 ORDER BY created_at DESC, id DESC`

func (q *Queries) ListFeaturedProjects(ctx context.Context) ([]Project, error) {
	return q.queryProjects(ctx, listFeaturedProjects)
}

const listProjectCategories = `SELECT DISTINCT category FROM projects WHERE category != '' ORDER BY category`

func (q *Queries) ListProjectCategories(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listProjectCategories)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		items = append(items, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countProjects = `SELECT COUNT(*) FROM projects`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProjects).Scan(&count)
	return count, err
}

const getProjectByID = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

func (q *Queries) GetProjectByID(ctx context.Context, id int64) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProjectByID, id))
}

const projectSlugExists = `SELECT EXISTS(SELECT 1 FROM projects WHERE slug = ? AND id != ?)`

func (q *Queries) ProjectSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, projectSlugExists, slug, excludeID).Scan(&exists)
	return exists, err
}

const createProject = `INSERT INTO projects (title, slug, description, image, category, client, link, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + projectColumns

type CreateProjectParams struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Client      string    `json:"client"`
	Link        string    `json:"link"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.Image,
		arg.Category,
		arg.Client,
		arg.Link,
		arg.Featured,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanProject(row)
}

const updateProject = `UPDATE projects
SET title = ?, slug = ?, description = ?, image = ?, category = ?, client = ?, link = ?, featured = ?, updated_at = ?
WHERE id = ?
RETURNING ` + projectColumns

type UpdateProjectParams struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Client      string    `json:"client"`
	Link        string    `json:"link"`
	Featured    bool      `json:"featured"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          int64     `json:"id"`
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRowContext(ctx, updateProject,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.Image,
		arg.Category,
		arg.Client,
		arg.Link,
		arg.Featured,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanProject(row)
}

const deleteProject = `DELETE FROM projects WHERE id = ?`

func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteProject, id)
	return err
}

// DeleteProjects removes every project in ids with a single statement.
func (q *Queries) DeleteProjects(ctx context.Context, ids []int64) (int64, error) {
	return q.deleteByIDs(ctx, "projects", ids)
}
