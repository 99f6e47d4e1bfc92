// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const contactInquiryColumns = `id, name, email, company, message, ip_address, is_read, created_at`

func scanContactInquiry(row interface{ Scan(...any) error }) (ContactInquiry, error) {
	var i ContactInquiry
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Company,
		&i.Message,
		&i.IpAddress,
		&i.IsRead,
		&i.CreatedAt,
	)
	return i, err
}

const createContactInquiry = `INSERT INTO contact_inquiries (name, email, company, message, ip_address, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + contactInquiryColumns

type CreateContactInquiryParams struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	IpAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *Queries) CreateContactInquiry(ctx context.Context, arg CreateContactInquiryParams) (ContactInquiry, error) {
	row := q.db.QueryRowContext(ctx, createContactInquiry,
		arg.Name,
		arg.Email,
		arg.Company,
		arg.Message,
		arg.IpAddress,
		arg.CreatedAt,
	)
	return scanContactInquiry(row)
}

const listContactInquiries = `SELECT ` + contactInquiryColumns + ` FROM contact_inquiries ORDER BY created_at DESC, id DESC`

func (q *Queries) ListContactInquiries(ctx context.Context) ([]ContactInquiry, error) {
	rows, err := q.db.QueryContext(ctx, listContactInquiries)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []ContactInquiry
	for rows.Next() {
		i, err := scanContactInquiry(rows)
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

const markInquiryRead = `UPDATE contact_inquiries SET is_read = 1 WHERE id = ?`

func (q *Queries) MarkInquiryRead(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markInquiryRead, id)
	return err
}

const countContactInquiries = `SELECT COUNT(*) FROM contact_inquiries`

func (q *Queries) CountContactInquiries(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactInquiries).Scan(&count)
	return count, err
}
