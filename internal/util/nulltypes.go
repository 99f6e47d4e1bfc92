// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// DateTimeLocalLayout is the value format of an <input type="datetime-local">.
const DateTimeLocalLayout = "2006-01-02T15:04"

// ParseNullInt64 parses s into sql.NullInt64. Blank or unparsable input is NULL.
func ParseNullInt64(s string) sql.NullInt64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullInt64{}
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.NullInt64{Int64: val, Valid: true}
	}
	return sql.NullInt64{}
}

// ParseNullTime parses a datetime-local value in loc. Blank or unparsable input is NULL.
func ParseNullTime(s string, loc *time.Location) sql.NullTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}
	}
	t, err := time.ParseInLocation(DateTimeLocalLayout, s, loc)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// FormatNullTime renders t for a datetime-local input, or "" when NULL.
func FormatNullTime(t sql.NullTime, loc *time.Location) string {
	if !t.Valid {
		return ""
	}
	return t.Time.In(loc).Format(DateTimeLocalLayout)
}
