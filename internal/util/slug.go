// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared by handlers: slugs, client
// addresses and nullable form values.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugRun matches every run of characters that cannot appear in a slug.
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	// slugPattern is the accepted slug shape for services, projects and posts.
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Slugify converts a title to a URL slug: accents are stripped, other
// scripts transliterated, letters lowercased, and every run of other
// characters collapsed into one hyphen with none at either end.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(unidecode.Unidecode(result))
	result = nonSlugRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s contains only lowercase letters, digits and hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
