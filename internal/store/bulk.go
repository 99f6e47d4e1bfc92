// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStaleOrder is returned when a reorder targets a service that no longer exists.
var ErrStaleOrder = errors.New("service order is stale")

// bulkDeleteTables guards the table names accepted by deleteByIDs.
var bulkDeleteTables = map[string]bool{
	"services":   true,
	"projects":   true,
	"blog_posts": true,
}

// deleteByIDs issues one DELETE ... WHERE id IN (...) statement.
func (q *Queries) deleteByIDs(ctx context.Context, table string, ids []int64) (int64, error) {
	if !bulkDeleteTables[table] {
		return 0, fmt.Errorf("bulk delete not allowed on %q", table)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := "DELETE FROM " + table + " WHERE id IN (" + strings.Join(placeholders, ", ") + ")"
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ServiceOrderUpdate is one position change produced by a drag reorder.
type ServiceOrderUpdate struct {
	ID       int64 `json:"id"`
	Position int64 `json:"position"`
}

// ReorderServices persists updates as one ordered batch: either every
// position is written or none is.
func ReorderServices(ctx context.Context, db *sql.DB, updates []ServiceOrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reorder transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := New(db).WithTx(tx)
	now := time.Now()
	for _, u := range updates {
		n, err := qtx.UpdateServicePosition(ctx, UpdateServicePositionParams{
			Position:  u.Position,
			UpdatedAt: now,
			ID:        u.ID,
		})
		if err != nil {
			return fmt.Errorf("updating position of service %d: %w", u.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("service %d: %w", u.ID, ErrStaleOrder)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}
