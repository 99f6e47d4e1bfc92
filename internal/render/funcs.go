// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"database/sql"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/lovelliph/Services/internal/geoip"
	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/store"
)

var (
	markdownConverter = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlSanitizer     = bluemonday.UGCPolicy()
)

// Markdown converts src to sanitized HTML.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdownConverter.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}

// Truncate shortens s to at most n runes, appending "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// HasRole reports whether admin's role meets min.
func HasRole(admin *store.AdminUser, min string) bool {
	if admin == nil {
		return false
	}
	return model.Role(admin.Role).AtLeast(model.Role(min))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"formatNullTime": func(t sql.NullTime) string {
			if !t.Valid {
				return "-"
			}
			return t.Time.Format("Jan 2, 2006")
		},
		"truncate":    Truncate,
		"markdown":    Markdown,
		"join":        strings.Join,
		"hasRole":     HasRole,
		"roleLabel":   func(r string) string { return model.Role(r).Label() },
		"roles":       func() []model.Role { return model.Roles },
		"countryName": geoip.CountryName,
		"lower":       strings.ToLower,
		"add": func(a, b int) int {
			return a + b
		},
		"price": func(amount int) string {
			return "$" + strconv.Itoa(amount)
		},
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict requires key/value pairs")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, errors.New("dict keys must be strings")
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}
}
