// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
	"time"
)

func TestParseNullInt64(t *testing.T) {
	if v := ParseNullInt64(""); v.Valid {
		t.Error("blank should be NULL")
	}
	if v := ParseNullInt64("abc"); v.Valid {
		t.Error("garbage should be NULL")
	}
	if v := ParseNullInt64(" 0 "); !v.Valid || v.Int64 != 0 {
		t.Errorf("0 should be a valid value, got %+v", v)
	}
	if v := ParseNullInt64("12"); !v.Valid || v.Int64 != 12 {
		t.Errorf("12 = %+v", v)
	}
}

func TestParseNullTime(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)

	v := ParseNullTime("2025-01-10T09:30", loc)
	if !v.Valid {
		t.Fatal("expected valid time")
	}
	want := time.Date(2025, 1, 10, 1, 30, 0, 0, time.UTC)
	if !v.Time.Equal(want) {
		t.Errorf("ParseNullTime = %v, want %v", v.Time, want)
	}
	if got := FormatNullTime(v, loc); got != "2025-01-10T09:30" {
		t.Errorf("FormatNullTime = %q", got)
	}

	if ParseNullTime("", loc).Valid || ParseNullTime("yesterday", loc).Valid {
		t.Error("blank and garbage should be NULL")
	}
	if FormatNullTime(ParseNullTime("", loc), loc) != "" {
		t.Error("NULL should format as empty")
	}
}
