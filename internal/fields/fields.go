// Package fields holds the value types and checks shared by the portfolio
// records: calendar dates, JSON list columns, slugs and link addresses.
package fields

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is lowercase alphanumeric words joined by single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// DeriveSlug returns slug when it is set, otherwise the slugified fallback.
func DeriveSlug(slug, fallback string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return uploads.Slugify(fallback)
}

// ValidURL reports whether s is an absolute http or https address.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Optional trims s and returns nil when nothing remains.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// OptionalURL trims s and checks it is a link address. Blank values yield nil.
func OptionalURL(field string, s *string) (*string, error) {
	v := Optional(s)
	if v != nil && !ValidURL(*v) {
		return nil, fmt.Errorf("%s must be an http or https address", field)
	}
	return v, nil
}

// OneOf reports whether v is one of the allowed values.
func OneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
