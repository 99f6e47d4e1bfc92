// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lovelliph/Services/internal/content"
	"github.com/lovelliph/Services/internal/render"
	"github.com/lovelliph/Services/internal/seo"
	"github.com/lovelliph/Services/internal/site"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/util"
)

// homePostLimit is the number of posts shown in the insights section.
const homePostLimit = 3

// PublicHandler serves the marketing pages.
type PublicHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	trustedProxies []string
	seo            seo.SiteConfig
	now            func() time.Time
}

// NewPublicHandler creates a new PublicHandler.
// siteURL is the absolute origin used for canonical links.
func NewPublicHandler(db *sql.DB, renderer *render.Renderer, trustedProxies []string, siteURL string) *PublicHandler {
	return &PublicHandler{
		queries:        store.New(db),
		renderer:       renderer,
		trustedProxies: trustedProxies,
		seo:            siteSEO(siteURL),
		now:            time.Now,
	}
}

// ContactFormData is the inquiry form state on the home page.
type ContactFormData struct {
	Form   content.ContactForm
	Errors content.FieldErrors
}

// HomeData holds data for the home page.
type HomeData struct {
	Page        site.Page
	Services    []store.Service
	Projects    []store.Project
	Posts       []store.BlogPost
	Carousel    site.Carousel
	Testimonial site.Testimonial
	Contact     ContactFormData
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK, ContactFormData{})
}

func (h *PublicHandler) renderHome(w http.ResponseWriter, r *http.Request, status int, contact ContactFormData) {
	ctx := r.Context()
	page := site.Home()

	services, err := h.queries.ListServices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list services", "error", err)
	}
	projects, err := h.queries.ListFeaturedProjects(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list featured projects", "error", err)
	}
	posts, err := h.queries.ListPublishedBlogPosts(ctx, store.ListPublishedBlogPostsParams{
		Now:   h.now().UTC(),
		Limit: homePostLimit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list blog posts", "error", err)
	}

	carousel := site.CarouselFromQuery(r.URL.Query().Get("t"), len(page.Testimonials))
	data := HomeData{
		Page:     page,
		Services: site.ServicesOr(services),
		Projects: site.ProjectsOr(projects),
		Posts:    site.BlogPostsOr(posts),
		Carousel: carousel,
		Contact:  contact,
	}
	if carousel.N > 0 {
		data.Testimonial = page.Testimonials[carousel.Index]
	}

	title := "Lovelli | Digital Marketing & Social Media Agency"
	meta := seo.BuildMeta(seo.PageData{Title: title, Description: page.Hero.Subline, Path: "/"}, h.seo)
	meta.JSONLD = seo.BuildOrganizationSchema(h.seo, page.Contact.Email, page.Contact.Phone, page.Hero.Subline)

	renderPage(w, r, h.renderer, status, "public/home", render.TemplateData{
		Title:       title,
		Description: page.Hero.Subline,
		Data:        data,
		Meta:        meta,
	})
}

// ServiceDetailData holds data for a service page.
type ServiceDetailData struct {
	Service store.Service
	Others  []store.Service
	Contact site.Contact
}

// ServiceDetail handles GET /services/{slug}. A service missing from the
// database falls back to the built-in copy of the same slug.
func (h *PublicHandler) ServiceDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		h.renderer.NotFound(w, r)
		return
	}

	svc, err := h.queries.GetServiceBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.ErrorContext(ctx, "failed to get service", "error", err, "slug", slug)
		}
		fallback, ok := site.DefaultService(slug)
		if !ok {
			h.renderer.NotFound(w, r)
			return
		}
		svc = fallback
	}

	all, err := h.queries.ListServices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list services", "error", err)
	}
	var others []store.Service
	for _, s := range site.ServicesOr(all) {
		if s.Slug != svc.Slug {
			others = append(others, s)
		}
	}

	renderPage(w, r, h.renderer, http.StatusOK, "public/service", render.TemplateData{
		Title:       svc.Title + " | Lovelli",
		Description: svc.Description,
		Meta: seo.BuildMeta(seo.PageData{
			Title:       svc.Title + " | Lovelli",
			Description: svc.Description,
			Body:        svc.LongDescription,
			Path:        "/services/" + svc.Slug,
			Image:       svc.Image,
			OGType:      "article",
		}, h.seo),
		Data: ServiceDetailData{
			Service: svc,
			Others:  others,
			Contact: site.Home().Contact,
		},
	})
}

// ContactSubmit handles POST /contact.
func (h *PublicHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectContact) {
		return
	}

	form := content.NewContactForm(formGetter(r))
	if errs := content.Validate(form); errs != nil {
		h.renderHome(w, r, http.StatusUnprocessableEntity, ContactFormData{Form: form, Errors: errs})
		return
	}

	ip := util.ClientIP(r, h.trustedProxies)
	if _, err := h.queries.CreateContactInquiry(r.Context(), form.CreateParams(ip, h.now())); err != nil {
		slog.ErrorContext(r.Context(), "failed to store inquiry", "error", err)
		flashError(w, r, h.renderer, redirectContact, "We couldn't send your message. Please try again.")
		return
	}

	slog.InfoContext(r.Context(), "contact inquiry received", "ip", ip)
	flashSuccess(w, r, h.renderer, redirectContact, msgContactThanks)
}
