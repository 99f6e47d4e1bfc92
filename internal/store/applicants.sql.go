// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const applicantColumns = `id, reference, name, email, phone, position_applied, experience_years, company_name, website_url, message, ip_address, country, user_agent, status, created_at`

func scanApplicant(row interface{ Scan(...any) error }) (Applicant, error) {
	var i Applicant
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.PositionApplied,
		&i.ExperienceYears,
		&i.CompanyName,
		&i.WebsiteUrl,
		&i.Message,
		&i.IpAddress,
		&i.Country,
		&i.UserAgent,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const getApplicantByEmail = `SELECT ` + applicantColumns + ` FROM applicants WHERE email = ? LIMIT 1`

// GetApplicantByEmail returns sql.ErrNoRows when nobody applied with email.
func (q *Queries) GetApplicantByEmail(ctx context.Context, email string) (Applicant, error) {
	return scanApplicant(q.db.QueryRowContext(ctx, getApplicantByEmail, email))
}

const getApplicantByID = `SELECT ` + applicantColumns + ` FROM applicants WHERE id = ?`

func (q *Queries) GetApplicantByID(ctx context.Context, id int64) (Applicant, error) {
	return scanApplicant(q.db.QueryRowContext(ctx, getApplicantByID, id))
}

const createApplicant = `INSERT INTO applicants (
    reference, name, email, phone, position_applied, experience_years, company_name,
    website_url, message, ip_address, country, user_agent, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + applicantColumns

type CreateApplicantParams struct {
	Reference       string        `json:"reference"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	PositionApplied string        `json:"position_applied"`
	ExperienceYears sql.NullInt64 `json:"experience_years"`
	CompanyName     string        `json:"company_name"`
	WebsiteUrl      string        `json:"website_url"`
	Message         string        `json:"message"`
	IpAddress       string        `json:"ip_address"`
	Country         string        `json:"country"`
	UserAgent       string        `json:"user_agent"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (q *Queries) CreateApplicant(ctx context.Context, arg CreateApplicantParams) (Applicant, error) {
	row := q.db.QueryRowContext(ctx, createApplicant,
		arg.Reference,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.PositionApplied,
		arg.ExperienceYears,
		arg.CompanyName,
		arg.WebsiteUrl,
		arg.Message,
		arg.IpAddress,
		arg.Country,
		arg.UserAgent,
		arg.Status,
		arg.CreatedAt,
	)
	return scanApplicant(row)
}

const listApplicants = `SELECT ` + applicantColumns + ` FROM applicants
WHERE (? = '' OR status = ?)
ORDER BY created_at DESC, id DESC`

// ListApplicants returns all applicants, or only those in status when it is non-empty.
func (q *Queries) ListApplicants(ctx context.Context, status string) ([]Applicant, error) {
	rows, err := q.db.QueryContext(ctx, listApplicants, status, status)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []Applicant
	for rows.Next() {
		i, err := scanApplicant(rows)
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

const countApplicants = `SELECT COUNT(*) FROM applicants`

func (q *Queries) CountApplicants(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countApplicants).Scan(&count)
	return count, err
}

const updateApplicantStatus = `UPDATE applicants SET status = ? WHERE id = ?`

type UpdateApplicantStatusParams struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

func (q *Queries) UpdateApplicantStatus(ctx context.Context, arg UpdateApplicantStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateApplicantStatus, arg.Status, arg.ID)
	return err
}

const deleteApplicant = `DELETE FROM applicants WHERE id = ?`

func (q *Queries) DeleteApplicant(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteApplicant, id)
	return err
}

const checkApplicationRateLimit = `SELECT COUNT(*) < ? FROM applicants WHERE ip_address = ? AND created_at >= ?`

type CheckApplicationRateLimitParams struct {
	IpAddress       string    `json:"ip_address"`
	Since           time.Time `json:"since"`
	MaxApplications int64     `json:"max_applications"`
}

// CheckApplicationRateLimit reports whether IpAddress may submit another
// application: true while fewer than MaxApplications were stored since Since.
func (q *Queries) CheckApplicationRateLimit(ctx context.Context, arg CheckApplicationRateLimitParams) (bool, error) {
	var allowed bool
	err := q.db.QueryRowContext(ctx, checkApplicationRateLimit, arg.MaxApplications, arg.IpAddress, arg.Since).Scan(&allowed)
	return allowed, err
}
