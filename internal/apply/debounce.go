// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apply

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls per key. Each Wait restarts the delay
// for its key and cancels the waiter it replaces, so only the last call in a
// burst proceeds.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]chan struct{}
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]chan struct{}),
	}
}

// Wait blocks for the debounce delay. It returns true when the delay elapsed
// without a newer Wait for the same key, and false when it was superseded or
// ctx ended first.
func (d *Debouncer) Wait(ctx context.Context, key string) bool {
	cancel := make(chan struct{})

	d.mu.Lock()
	if prev, ok := d.pending[key]; ok {
		close(prev)
	}
	d.pending[key] = cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	var fired bool
	select {
	case <-timer.C:
		fired = true
	case <-cancel:
		return false
	case <-ctx.Done():
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending[key] != cancel {
		// replaced between the timer firing and taking the lock
		return false
	}
	delete(d.pending, key)
	return fired
}

// Pending returns the number of keys with an outstanding wait.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
