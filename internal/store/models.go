// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings persisted as a JSON array.
type StringList []string

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scanning StringList: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scanning StringList: %w", err)
	}
	*l = items
	return nil
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type AdminUser struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Service struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Image           string     `json:"image"`
	Icon            string     `json:"icon"`
	Position        int64      `json:"position"`
	Features        StringList `json:"features"`
	Benefits        StringList `json:"benefits"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Client      string    `json:"client"`
	Link        string    `json:"link"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BlogPost struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Excerpt       string       `json:"excerpt"`
	Content       string       `json:"content"`
	Category      string       `json:"category"`
	FeaturedImage string       `json:"featured_image"`
	Author        string       `json:"author"`
	PublishedAt   sql.NullTime `json:"published_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsPublished reports whether the post is visible on the public site at now.
func (p BlogPost) IsPublished(now time.Time) bool {
	return p.PublishedAt.Valid && !p.PublishedAt.Time.After(now)
}

type Applicant struct {
	ID              int64         `json:"id"`
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

type ContactInquiry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	IpAddress string    `json:"ip_address"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type PasswordResetToken struct {
	ID          int64        `json:"id"`
	AdminUserID int64        `json:"admin_user_id"`
	TokenHash   string       `json:"-"`
	ExpiresAt   time.Time    `json:"expires_at"`
	UsedAt      sql.NullTime `json:"used_at"`
	CreatedAt   time.Time    `json:"created_at"`
}
