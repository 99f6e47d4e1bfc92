// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const passwordResetTokenColumns = `id, admin_user_id, token_hash, expires_at, used_at, created_at`

const createPasswordResetToken = `INSERT INTO password_reset_tokens (admin_user_id, token_hash, expires_at, created_at)
VALUES (?, ?, ?, ?)
RETURNING ` + passwordResetTokenColumns

type CreatePasswordResetTokenParams struct {
	AdminUserID int64     `json:"admin_user_id"`
	TokenHash   string    `json:"token_hash"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreatePasswordResetToken(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error) {
	row := q.db.QueryRowContext(ctx, createPasswordResetToken,
		arg.AdminUserID,
		arg.TokenHash,
		arg.ExpiresAt,
		arg.CreatedAt,
	)
	var i PasswordResetToken
	err := row.Scan(&i.ID, &i.AdminUserID, &i.TokenHash, &i.ExpiresAt, &i.UsedAt, &i.CreatedAt)
	return i, err
}

const getPasswordResetToken = `SELECT ` + passwordResetTokenColumns + ` FROM password_reset_tokens WHERE token_hash = ?`

func (q *Queries) GetPasswordResetToken(ctx context.Context, tokenHash string) (PasswordResetToken, error) {
	row := q.db.QueryRowContext(ctx, getPasswordResetToken, tokenHash)
	var i PasswordResetToken
	err := row.Scan(&i.ID, &i.AdminUserID, &i.TokenHash, &i.ExpiresAt, &i.UsedAt, &i.CreatedAt)
	return i, err
}

const markPasswordResetTokenUsed = `UPDATE password_reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`

type MarkPasswordResetTokenUsedParams struct {
	UsedAt sql.NullTime `json:"used_at"`
	ID     int64        `json:"id"`
}

// MarkPasswordResetTokenUsed returns the number of rows changed; zero means
// the token was already consumed.
func (q *Queries) MarkPasswordResetTokenUsed(ctx context.Context, arg MarkPasswordResetTokenUsedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, markPasswordResetTokenUsed, arg.UsedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteExpiredPasswordResetTokens = `DELETE FROM password_reset_tokens WHERE expires_at < ? OR used_at IS NOT NULL`

func (q *Queries) DeleteExpiredPasswordResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredPasswordResetTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
