// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const blogPostColumns = `id, title, slug, excerpt, content, category, featured_image, author, published_at, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (BlogPost, error) {
	var i BlogPost
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.Category,
		&i.FeaturedImage,
		&i.Author,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) queryBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []BlogPost
	for rows.Next() {
		i, err := scanBlogPost(rows)
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

const listBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY COALESCE(published_at, created_at) DESC, id DESC`

func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listBlogPosts)
}

const listPublishedBlogPosts = `SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE published_at IS NOT NULL AND published_at <= ?
ORDER BY published_at DESC, id DESC
LIMIT ?`

type ListPublishedBlogPostsParams struct {
	Now   time.Time `json:"now"`
	Limit int64     `json:"limit"`
}

func (q *Queries) ListPublishedBlogPosts(ctx context.Context, arg ListPublishedBlogPostsParams) ([]BlogPost, error) {
	return q.queryBlogPosts(ctx, listPublishedBlogPosts, arg.Now, arg.Limit)
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts`

func (q *Queries) CountBlogPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogPosts).Scan(&count)
	return count, err
}

const getBlogPostByID = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const blogPostSlugExists = `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ? AND id != ?)`

func (q *Queries) BlogPostSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogPostSlugExists, slug, excludeID).Scan(&exists)
	return exists, err
}

const createBlogPost = `INSERT INTO blog_posts (title, slug, excerpt, content, category, featured_image, author, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

type CreateBlogPostParams struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Excerpt       string       `json:"excerpt"`
	Content       string       `json:"content"`
	Category      string       `json:"category"`
	FeaturedImage string       `json:"featured_image"`
	Author        string       `json:"author"`
	PublishedAt   sql.NullTime `json:"published_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.Category,
		arg.FeaturedImage,
		arg.Author,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBlogPost(row)
}

const updateBlogPost = `UPDATE blog_posts
SET title = ?, slug = ?, excerpt = ?, content = ?, category = ?, featured_image = ?, author = ?, published_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

type UpdateBlogPostParams struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Excerpt       string       `json:"excerpt"`
	Content       string       `json:"content"`
	Category      string       `json:"category"`
	FeaturedImage string       `json:"featured_image"`
	Author        string       `json:"author"`
	PublishedAt   sql.NullTime `json:"published_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	ID            int64        `json:"id"`
}

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
		arg.Content,
		arg.Category,
		arg.FeaturedImage,
		arg.Author,
		arg.PublishedAt,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanBlogPost(row)
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}

// DeleteBlogPosts removes every post in ids with a single statement.
func (q *Queries) DeleteBlogPosts(ctx context.Context, ids []int64) (int64, error) {
	return q.deleteByIDs(ctx, "blog_posts", ids)
}
