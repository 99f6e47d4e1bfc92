// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apply implements the careers application flow: field rules,
// debounced field checks with duplicate detection, and submission with
// honeypot, rate limit and uniqueness handling.
package apply

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Form field names.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldPosition        = "position"
	FieldExperienceYears = "experience_years"
	FieldCompany         = "company"
	FieldWebsiteURL      = "website_url"
	FieldMessage         = "message"
	FieldHoneypot        = "honeypot"
)

// ValidatedFields lists the fields that carry rules, in form order.
var ValidatedFields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldPosition,
	FieldExperienceYears,
	FieldCompany,
	FieldWebsiteURL,
	FieldMessage,
}

// Limits applied by the rules below.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	PhoneMinDigits   = 10
	CompanyMaxLength = 200
	MessageMinLength = 50
	MessageMaxLength = 2000
	ExperienceMax    = 50
)

// Positions are the openings an applicant can choose from.
var Positions = []string{
	"Digital Marketing Specialist",
	"Social Media Manager",
	"Content Creator",
	"Graphic Designer",
	"Video Editor",
	"SEO Specialist",
	"Copywriter",
	"Virtual Assistant",
	"Customer Service Representative",
	"Data Entry Specialist",
	"Web Developer",
	"Project Manager",
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// Fields is the application form.
type Fields struct {
	Name            string
	Email           string
	Phone           string
	Position        string
	ExperienceYears string
	Company         string
	WebsiteURL      string
	Message         string
	Honeypot        string
}

// Get returns the raw value of a named field.
func (f Fields) Get(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldPosition:
		return f.Position
	case FieldExperienceYears:
		return f.ExperienceYears
	case FieldCompany:
		return f.Company
	case FieldWebsiteURL:
		return f.WebsiteURL
	case FieldMessage:
		return f.Message
	case FieldHoneypot:
		return f.Honeypot
	}
	return ""
}

// FieldsFromForm reads the form values named after the Field constants.
func FieldsFromForm(get func(string) string) Fields {
	return Fields{
		Name:            get(FieldName),
		Email:           get(FieldEmail),
		Phone:           get(FieldPhone),
		Position:        get(FieldPosition),
		ExperienceYears: get(FieldExperienceYears),
		Company:         get(FieldCompany),
		WebsiteURL:      get(FieldWebsiteURL),
		Message:         get(FieldMessage),
		Honeypot:        get(FieldHoneypot),
	}
}

// IsKnownField reports whether field has validation rules.
func IsKnownField(field string) bool {
	return slices.Contains(ValidatedFields, field)
}

// NormalizeEmail is the form in which emails are stored and compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateField returns the error message for one field, or "" when valid.
func ValidateField(field, value string) string {
	trimmed := strings.TrimSpace(value)

	switch field {
	case FieldName:
		n := utf8.RuneCountInString(trimmed)
		switch {
		case n == 0:
			return "Name is required"
		case n < NameMinLength:
			return fmt.Sprintf("Name must be at least %d characters", NameMinLength)
		case n > NameMaxLength:
			return fmt.Sprintf("Name must be less than %d characters", NameMaxLength)
		}

	case FieldEmail:
		if trimmed == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(trimmed) {
			return "Please enter a valid email address"
		}

	case FieldPhone:
		if trimmed == "" {
			return "Phone number is required"
		}
		if !phonePattern.MatchString(trimmed) || countDigits(trimmed) < PhoneMinDigits {
			return fmt.Sprintf("Please enter a valid phone number (min %d digits)", PhoneMinDigits)
		}

	case FieldPosition:
		if !slices.Contains(Positions, trimmed) {
			return "Please select a position"
		}

	case FieldExperienceYears:
		if trimmed == "" {
			return ""
		}
		years, err := strconv.Atoi(trimmed)
		if err != nil || years < 0 || years > ExperienceMax {
			return fmt.Sprintf("Experience must be a whole number between 0 and %d", ExperienceMax)
		}

	case FieldCompany:
		if utf8.RuneCountInString(trimmed) > CompanyMaxLength {
			return fmt.Sprintf("Company name must be less than %d characters", CompanyMaxLength)
		}

	case FieldWebsiteURL:
		if trimmed != "" && !isAbsoluteURL(trimmed) {
			return "Please enter a valid URL"
		}

	case FieldMessage:
		n := utf8.RuneCountInString(trimmed)
		switch {
		case n == 0:
			return "Message is required"
		case n < MessageMinLength:
			return fmt.Sprintf("Message must be at least %d characters (%d/%d)", MessageMinLength, n, MessageMinLength)
		case n > MessageMaxLength:
			return fmt.Sprintf("Message must be less than %d characters (%d/%d)", MessageMaxLength, n, MessageMaxLength)
		}
	}

	return ""
}

// Validate checks every field and returns the failing ones keyed by field name.
// The map is empty when the form is valid.
func Validate(f Fields) map[string]string {
	errs := make(map[string]string)
	for _, field := range ValidatedFields {
		if msg := ValidateField(field, f.Get(field)); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
