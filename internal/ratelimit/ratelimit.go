// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ratelimit caps how many applications one address may submit
// within a rolling window.
package ratelimit

import (
	"context"
	"time"

	"github.com/lovelliph/Services/internal/store"
)

// Checker reports whether ip may submit another application.
type Checker interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// Limits is the quota shared by every Checker.
type Limits struct {
	Max    int
	Window time.Duration
}

// RateLimitQuerier is the store query backing StoreChecker.
type RateLimitQuerier interface {
	CheckApplicationRateLimit(ctx context.Context, arg store.CheckApplicationRateLimitParams) (bool, error)
}

// StoreChecker counts stored applications from the address inside the window.
type StoreChecker struct {
	q      RateLimitQuerier
	limits Limits
	now    func() time.Time
}

// NewStoreChecker creates a StoreChecker.
func NewStoreChecker(q RateLimitQuerier, limits Limits) *StoreChecker {
	return &StoreChecker{q: q, limits: limits, now: time.Now}
}

// Allow implements Checker.
func (c *StoreChecker) Allow(ctx context.Context, ip string) (bool, error) {
	return c.q.CheckApplicationRateLimit(ctx, store.CheckApplicationRateLimitParams{
		IpAddress:       ip,
		Since:           c.now().UTC().Add(-c.limits.Window),
		MaxApplications: int64(c.limits.Max),
	})
}
