// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"sync"
	"time"
)

// BuildFunc renders a fresh sitemap.
type BuildFunc func(ctx context.Context) ([]byte, error)

// SitemapCache keeps the rendered sitemap for ttl so crawlers do not hit
// the database on every request.
type SitemapCache struct {
	build BuildFunc
	ttl   time.Duration
	now   func() time.Time

	mu       sync.RWMutex
	xml      []byte
	cachedAt time.Time
}

// NewSitemapCache wraps build. ttl defaults to 15 minutes.
func NewSitemapCache(build BuildFunc, ttl time.Duration) *SitemapCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SitemapCache{build: build, ttl: ttl, now: time.Now}
}

func (c *SitemapCache) fresh() bool {
	return c.xml != nil && c.now().Sub(c.cachedAt) < c.ttl
}

// Get returns the cached sitemap, rebuilding it when stale.
func (c *SitemapCache) Get(ctx context.Context) ([]byte, error) {
	c.mu.RLock()
	if c.fresh() {
		xml := c.xml
		c.mu.RUnlock()
		return xml, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// another request may have rebuilt it meanwhile
	if c.fresh() {
		return c.xml, nil
	}

	xml, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.xml = xml
	c.cachedAt = c.now()
	return xml, nil
}

// Invalidate drops the cached copy.
func (c *SitemapCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.xml = nil
	c.cachedAt = time.Time{}
}
