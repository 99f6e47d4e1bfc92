// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
)

// Meta holds the social and canonical tags of a public page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string // website or article
	OGImage     string // absolute
	SiteName    string
	TwitterCard string
	// JSONLD is structured data for a <script type="application/ld+json">.
	JSONLD template.JS
}

// PageData describes the page being rendered.
type PageData struct {
	Title       string
	Description string
	// Body is used for the description when Description is empty.
	Body   string
	Path   string
	Image  string
	OGType string
}

// SiteConfig holds site-wide SEO settings.
type SiteConfig struct {
	SiteName       string
	SiteURL        string
	DefaultOGImage string
}

// BuildMeta fills Meta from page with site-wide fallbacks.
func BuildMeta(page PageData, site SiteConfig) *Meta {
	meta := &Meta{
		Title:       page.Title,
		Description: page.Description,
		OGType:      page.OGType,
		SiteName:    site.SiteName,
		TwitterCard: "summary_large_image",
	}
	if meta.Title == "" {
		meta.Title = site.SiteName
	}
	if meta.Description == "" && page.Body != "" {
		meta.Description = truncateText(stripTags(page.Body), 160)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}

	image := page.Image
	if image == "" {
		image = site.DefaultOGImage
	}
	meta.OGImage = absoluteURL(image, site.SiteURL)
	if meta.OGImage == "" {
		meta.TwitterCard = "summary"
	}

	if page.Path != "" {
		meta.Canonical = absoluteURL(page.Path, site.SiteURL)
	}
	return meta
}

// OrganizationSchema is schema.org/Organization for the agency.
type OrganizationSchema struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Email       string   `json:"email,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	Description string   `json:"description,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

// BuildOrganizationSchema renders the JSON-LD for the home page.
func BuildOrganizationSchema(site SiteConfig, email, phone, description string) template.JS {
	return marshalJSONLD(OrganizationSchema{
		Context:     "https://schema.org",
		Type:        "Organization",
		Name:        site.SiteName,
		URL:         strings.TrimSuffix(site.SiteURL, "/") + "/",
		Email:       email,
		Telephone:   phone,
		Description: description,
	})
}

func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// stripTags drops markup and collapses whitespace. Good enough for a
// description; the input is our own markdown or sanitised HTML.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.NewReplacer("#", "", "*", "", "_", "", "`", "").Replace(b.String())
	return strings.Join(strings.Fields(text), " ")
}

// truncateText shortens text to at most maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxLen {
		return string(runes)
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

func absoluteURL(u, siteURL string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimSuffix(siteURL, "/") + u
}
