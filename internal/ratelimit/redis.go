// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisChecker.
type RedisOptions struct {
	URL    string // e.g. redis://localhost:6379/0
	Prefix string // prepended to every key
	Limits Limits

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisChecker keeps one counter per address that expires with the window.
// Every Allow call counts as an attempt.
type RedisChecker struct {
	client *redis.Client
	prefix string
	limits Limits
}

// NewRedisChecker connects to Redis and verifies the connection.
func NewRedisChecker(ctx context.Context, opts RedisOptions) (*RedisChecker, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	if opts.DialTimeout > 0 {
		redisOpts.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return NewRedisCheckerWithClient(client, opts.Prefix, opts.Limits), nil
}

// NewRedisCheckerWithClient wraps an existing client. A zero window
// falls back to 24 hours so counters always expire.
func NewRedisCheckerWithClient(client *redis.Client, prefix string, limits Limits) *RedisChecker {
	if limits.Window <= 0 {
		limits.Window = 24 * time.Hour
	}
	return &RedisChecker{client: client, prefix: prefix, limits: limits}
}

func (c *RedisChecker) key(ip string) string {
	return c.prefix + "apply:" + ip
}

// Allow implements Checker. The counter is created with its expiry and
// incremented in one MULTI, so a key never outlives the window.
func (c *RedisChecker) Allow(ctx context.Context, ip string) (bool, error) {
	key := c.key(ip)

	var count *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, c.limits.Window)
		count = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("counting attempt on %s: %w", key, err)
	}
	return count.Val() <= int64(c.limits.Max), nil
}

// Ping checks the Redis connection.
func (c *RedisChecker) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *RedisChecker) Close() error {
	return c.client.Close()
}
