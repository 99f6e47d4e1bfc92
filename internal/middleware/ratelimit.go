// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/lovelliph/Services/internal/util"
)

// limiterCache keeps one token bucket per key.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the limiter for key, creating it on first use.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds drops every entry once the cache grows past maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// PublicRateLimiter throttles anonymous form posts per client IP.
type PublicRateLimiter struct {
	cache          *limiterCache[string]
	trustedProxies []string
}

// NewPublicRateLimiter allows rps requests per second with the given burst.
func NewPublicRateLimiter(rps float64, burst int, trustedProxies []string) *PublicRateLimiter {
	return &PublicRateLimiter{
		cache:          newLimiterCache[string](rps, burst),
		trustedProxies: trustedProxies,
	}
}

func (rl *PublicRateLimiter) allow(r *http.Request) (string, bool) {
	ip := util.ClientIP(r, rl.trustedProxies)
	if rl.cache.clearIfExceeds(50000) {
		slog.Info("cleared public rate limiters due to size")
	}
	return ip, rl.cache.get(ip).Allow()
}

// HTMLMiddleware answers throttled requests with plain text.
func (rl *PublicRateLimiter) HTMLMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip, ok := rl.allow(r); !ok {
				slog.WarnContext(r.Context(), "public rate limit exceeded", "ip", ip)
				http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JSONMiddleware answers throttled requests with {"error": "..."}.
func (rl *PublicRateLimiter) JSONMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip, ok := rl.allow(r); !ok {
				slog.WarnContext(r.Context(), "public rate limit exceeded", "ip", ip)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
