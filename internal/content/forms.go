// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/util"
)

// MsgSlugInUse is added by handlers when the slug belongs to another row.
const MsgSlugInUse = "This slug is already in use"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return util.IsValidSlug(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	return v
}

// messages maps "field.tag" to the text shown under the input.
var messages = map[string]string{
	"title.required":          "Title is required",
	"slug.required":           "Slug is required",
	"slug.slug":               "Slug can only contain lowercase letters, numbers, and hyphens",
	"description.required":    "Description is required",
	"image.required":          "Image URL is required",
	"image.http_url":          "Please enter a valid URL",
	"features.min":            "At least one feature is required",
	"link.http_url":           "Please enter a valid URL",
	"featured_image.http_url": "Please enter a valid URL",
	"content.required":        "Content is required",
	"published_at.datetime":   "Please enter a valid date and time",
	"name.required":           "Name is required",
	"email.required":          "Email is required",
	"email.email":             "Please enter a valid email address",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 8 characters",
	"password.max":            "Password must be at most 128 characters",
	"role.required":           "Role is required",
	"role.role":               "Please select a valid role",
	"name.max":                "Name must be less than 100 characters",
	"company.max":             "Company name must be less than 200 characters",
	"message.required":        "Message is required",
	"message.min":             "Message must be at least 10 characters",
	"message.max":             "Message must be less than 2000 characters",
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// Validate runs the struct tags of form and returns one message per
// failing field, or nil when the form is valid.
func Validate(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out[field] = msg
		} else {
			out[field] = "This field is invalid"
		}
	}
	return out
}

// ParseLines splits a textarea into one trimmed entry per non-blank line.
func ParseLines(text string) []string {
	var out []string
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// slugOrTitle returns slug, or the slugified title when slug is blank.
func slugOrTitle(slug, title string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return util.Slugify(title)
	}
	return slug
}

// ServiceForm is the service editor.
type ServiceForm struct {
	Title           string   `form:"title" validate:"required"`
	Slug            string   `form:"slug" validate:"required,slug"`
	Description     string   `form:"description" validate:"required"`
	LongDescription string   `form:"long_description"`
	Image           string   `form:"image" validate:"required,http_url"`
	Icon            string   `form:"icon"`
	Features        []string `form:"features" validate:"min=1"`
	Benefits        []string `form:"benefits"`
}

// NewServiceForm reads a ServiceForm through get, usually r.FormValue.
func NewServiceForm(get func(string) string) ServiceForm {
	title := strings.TrimSpace(get("title"))
	return ServiceForm{
		Title:           title,
		Slug:            slugOrTitle(get("slug"), title),
		Description:     strings.TrimSpace(get("description")),
		LongDescription: strings.TrimSpace(get("long_description")),
		Image:           strings.TrimSpace(get("image")),
		Icon:            strings.TrimSpace(get("icon")),
		Features:        ParseLines(get("features")),
		Benefits:        ParseLines(get("benefits")),
	}
}

// ServiceFormFrom fills the editor from a stored service.
func ServiceFormFrom(s store.Service) ServiceForm {
	return ServiceForm{
		Title:           s.Title,
		Slug:            s.Slug,
		Description:     s.Description,
		LongDescription: s.LongDescription,
		Image:           s.Image,
		Icon:            s.Icon,
		Features:        s.Features,
		Benefits:        s.Benefits,
	}
}

// CreateParams builds the insert for a new service at position.
func (f ServiceForm) CreateParams(position int64, now time.Time) store.CreateServiceParams {
	return store.CreateServiceParams{
		Title:           f.Title,
		Slug:            f.Slug,
		Description:     f.Description,
		LongDescription: f.LongDescription,
		Image:           f.Image,
		Icon:            f.Icon,
		Position:        position,
		Features:        f.Features,
		Benefits:        f.Benefits,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (f ServiceForm) UpdateParams(id int64, now time.Time) store.UpdateServiceParams {
	return store.UpdateServiceParams{
		ID:              id,
		Title:           f.Title,
		Slug:            f.Slug,
		Description:     f.Description,
		LongDescription: f.LongDescription,
		Image:           f.Image,
		Icon:            f.Icon,
		Features:        f.Features,
		Benefits:        f.Benefits,
		UpdatedAt:       now,
	}
}

// ProjectForm is the project editor.
type ProjectForm struct {
	Title       string `form:"title" validate:"required"`
	Slug        string `form:"slug" validate:"required,slug"`
	Description string `form:"description" validate:"required"`
	Image       string `form:"image" validate:"required,http_url"`
	Category    string `form:"category"`
	Client      string `form:"client"`
	Link        string `form:"link" validate:"omitempty,http_url"`
	Featured    bool   `form:"featured"`
}

func NewProjectForm(get func(string) string) ProjectForm {
	title := strings.TrimSpace(get("title"))
	return ProjectForm{
		Title:       title,
		Slug:        slugOrTitle(get("slug"), title),
		Description: strings.TrimSpace(get("description")),
		Image:       strings.TrimSpace(get("image")),
		Category:    strings.TrimSpace(get("category")),
		Client:      strings.TrimSpace(get("client")),
		Link:        strings.TrimSpace(get("link")),
		Featured:    isChecked(get("featured")),
	}
}

func ProjectFormFrom(p store.Project) ProjectForm {
	return ProjectForm{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Client:      p.Client,
		Link:        p.Link,
		Featured:    p.Featured,
	}
}

func (f ProjectForm) CreateParams(now time.Time) store.CreateProjectParams {
	return store.CreateProjectParams{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		Image:       f.Image,
		Category:    f.Category,
		Client:      f.Client,
		Link:        f.Link,
		Featured:    f.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (f ProjectForm) UpdateParams(id int64, now time.Time) store.UpdateProjectParams {
	return store.UpdateProjectParams{
		ID:          id,
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		Image:       f.Image,
		Category:    f.Category,
		Client:      f.Client,
		Link:        f.Link,
		Featured:    f.Featured,
		UpdatedAt:   now,
	}
}

// BlogPostForm is the blog editor. PublishedAt uses the datetime-local
// input format; blank keeps the post as a draft.
type BlogPostForm struct {
	Title         string `form:"title" validate:"required"`
	Slug          string `form:"slug" validate:"required,slug"`
	Excerpt       string `form:"excerpt"`
	Content       string `form:"content" validate:"required"`
	Category      string `form:"category"`
	FeaturedImage string `form:"featured_image" validate:"omitempty,http_url"`
	Author        string `form:"author"`
	PublishedAt   string `form:"published_at" validate:"omitempty,datetime=2006-01-02T15:04"`
}

func NewBlogPostForm(get func(string) string) BlogPostForm {
	title := strings.TrimSpace(get("title"))
	return BlogPostForm{
		Title:         title,
		Slug:          slugOrTitle(get("slug"), title),
		Excerpt:       strings.TrimSpace(get("excerpt")),
		Content:       strings.TrimSpace(get("content")),
		Category:      strings.TrimSpace(get("category")),
		FeaturedImage: strings.TrimSpace(get("featured_image")),
		Author:        strings.TrimSpace(get("author")),
		PublishedAt:   strings.TrimSpace(get("published_at")),
	}
}

// BlogPostFormFrom fills the editor, showing the publish time in loc.
func BlogPostFormFrom(p store.BlogPost, loc *time.Location) BlogPostForm {
	return BlogPostForm{
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		Category:      p.Category,
		FeaturedImage: p.FeaturedImage,
		Author:        p.Author,
		PublishedAt:   util.FormatNullTime(p.PublishedAt, loc),
	}
}

func (f BlogPostForm) publishedAt(loc *time.Location) sql.NullTime {
	return util.ParseNullTime(f.PublishedAt, loc)
}

func (f BlogPostForm) CreateParams(now time.Time, loc *time.Location) store.CreateBlogPostParams {
	return store.CreateBlogPostParams{
		Title:         f.Title,
		Slug:          f.Slug,
		Excerpt:       f.Excerpt,
		Content:       f.Content,
		Category:      f.Category,
		FeaturedImage: f.FeaturedImage,
		Author:        f.Author,
		PublishedAt:   f.publishedAt(loc),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (f BlogPostForm) UpdateParams(id int64, now time.Time, loc *time.Location) store.UpdateBlogPostParams {
	return store.UpdateBlogPostParams{
		ID:            id,
		Title:         f.Title,
		Slug:          f.Slug,
		Excerpt:       f.Excerpt,
		Content:       f.Content,
		Category:      f.Category,
		FeaturedImage: f.FeaturedImage,
		Author:        f.Author,
		PublishedAt:   f.publishedAt(loc),
		UpdatedAt:     now,
	}
}

// AdminUserForm creates a dashboard account.
type AdminUserForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8,max=128"`
	Role     string `form:"role" validate:"required,role"`
}

func NewAdminUserForm(get func(string) string) AdminUserForm {
	return AdminUserForm{
		Name:     strings.TrimSpace(get("name")),
		Email:    strings.ToLower(strings.TrimSpace(get("email"))),
		Password: get("password"),
		Role:     strings.TrimSpace(get("role")),
	}
}

// ContactForm is the inquiry form at the bottom of the home page.
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Company string `form:"company" validate:"max=200"`
	Message string `form:"message" validate:"required,min=10,max=2000"`
}

func NewContactForm(get func(string) string) ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(get("name")),
		Email:   strings.ToLower(strings.TrimSpace(get("email"))),
		Company: strings.TrimSpace(get("company")),
		Message: strings.TrimSpace(get("message")),
	}
}

// CreateParams converts the inquiry for storage.
func (f ContactForm) CreateParams(ip string, now time.Time) store.CreateContactInquiryParams {
	return store.CreateContactInquiryParams{
		Name:      f.Name,
		Email:     f.Email,
		Company:   f.Company,
		Message:   f.Message,
		IpAddress: ip,
		CreatedAt: now.UTC(),
	}
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
