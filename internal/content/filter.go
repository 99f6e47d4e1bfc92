// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content holds the list and form logic behind the admin screens
// for services, projects and blog posts.
package content

import (
	"slices"
	"strings"

	"github.com/lovelliph/Services/internal/store"
)

// CategoryAll is the project filter value that disables category matching.
const CategoryAll = "all"

func matches(query string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// FilterServices returns the services whose title, description or slug
// contains query, ignoring case. The input order is kept.
func FilterServices(items []store.Service, query string) []store.Service {
	q := normalizeQuery(query)
	if q == "" {
		return items
	}
	out := make([]store.Service, 0, len(items))
	for _, s := range items {
		if matches(q, s.Title, s.Description, s.Slug) {
			out = append(out, s)
		}
	}
	return out
}

// FilterProjects matches query against title, description, slug and client.
// An empty category or CategoryAll matches every project.
func FilterProjects(items []store.Project, query, category string) []store.Project {
	q := normalizeQuery(query)
	anyCategory := category == "" || category == CategoryAll
	if q == "" && anyCategory {
		return items
	}
	out := make([]store.Project, 0, len(items))
	for _, p := range items {
		if !anyCategory && p.Category != category {
			continue
		}
		if q != "" && !matches(q, p.Title, p.Description, p.Slug, p.Client) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterBlogPosts matches query against title, excerpt, slug and author.
func FilterBlogPosts(items []store.BlogPost, query string) []store.BlogPost {
	q := normalizeQuery(query)
	if q == "" {
		return items
	}
	out := make([]store.BlogPost, 0, len(items))
	for _, p := range items {
		if matches(q, p.Title, p.Excerpt, p.Slug, p.Author) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct non-empty project categories, sorted.
func Categories(items []store.Project) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, p := range items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	slices.Sort(out)
	return out
}
