// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/util"
)

func TestCarousel(t *testing.T) {
	tests := []struct {
		index, n        int
		want, next, prv int
	}{
		{0, 4, 0, 1, 3},
		{3, 4, 3, 0, 2},
		{5, 4, 1, 2, 0},
		{-1, 4, 3, 0, 2},
		{0, 1, 0, 0, 0},
		{2, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		c := NewCarousel(tt.index, tt.n)
		assert.Equal(t, tt.want, c.Index, "index for (%d,%d)", tt.index, tt.n)
		assert.Equal(t, tt.next, c.Next(), "next for (%d,%d)", tt.index, tt.n)
		assert.Equal(t, tt.prv, c.Prev(), "prev for (%d,%d)", tt.index, tt.n)
	}
}

func TestCarouselFromQuery(t *testing.T) {
	assert.Equal(t, 2, CarouselFromQuery("2", 4).Index)
	assert.Equal(t, 0, CarouselFromQuery("", 4).Index)
	assert.Equal(t, 0, CarouselFromQuery("abc", 4).Index)
	assert.Equal(t, []int{0, 1, 2}, CarouselFromQuery("1", 3).Dots())
}

func TestHome(t *testing.T) {
	p := Home()
	assert.Equal(t, "If your business could speak, what story would it tell?", p.Hero.Headline)
	assert.Len(t, p.Plans, 3)
	assert.Equal(t, 250, p.Plans[0].Price)
	assert.Equal(t, 350, p.Plans[1].Price)
	assert.True(t, p.Plans[2].Custom())
	assert.Equal(t, "hello@lovelli.com", p.Contact.Email)

	p.Plans[0].Price = 1
	assert.Equal(t, 250, Home().Plans[0].Price, "Home returns a fresh copy")
}

func TestDefaults(t *testing.T) {
	services := DefaultServices()
	assert.Len(t, services, 5)
	for i, s := range services {
		assert.True(t, util.IsValidSlug(s.Slug), s.Slug)
		assert.Equal(t, int64(i+1), s.Position)
		assert.NotEmpty(t, s.Features)
		assert.NotEmpty(t, s.Benefits)
		assert.NotEmpty(t, s.LongDescription)
	}
	assert.Len(t, DefaultProjects(), 3)
	assert.Len(t, DefaultBlogPosts(), 3)

	s, ok := DefaultService("content-creation")
	assert.True(t, ok)
	assert.Equal(t, "Content Creation", s.Title)
	_, ok = DefaultService("missing")
	assert.False(t, ok)
}

func TestFallbacks(t *testing.T) {
	assert.Len(t, ServicesOr(nil), 5)
	stored := []store.Service{{ID: 9, Slug: "only"}}
	assert.Equal(t, stored, ServicesOr(stored))
	assert.Len(t, ProjectsOr([]store.Project{}), 3)
	assert.Len(t, BlogPostsOr(nil), 3)
}
