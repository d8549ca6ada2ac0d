// Package categories manages the controlled vocabulary that projects and
// certifications are classified by. Each category belongs to one scope and is
// referenced from records by id only.
package categories

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
	"github.com/google/uuid"
)

// Scope names the record type a category classifies.
type Scope string

const (
	ScopeProjects       Scope = "projects"
	ScopeCertifications Scope = "certifications"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeProjects || s == ScopeCertifications
}

// Category is one entry of a scope's vocabulary.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Scope     Scope     `json:"scope"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Command carries the writable fields of a category. A blank slug is derived
// from the name.
type Command struct {
	Scope Scope  `json:"scope"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

func (c *Command) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = fields.DeriveSlug(c.Slug, c.Name)

	if !c.Scope.Valid() {
		return fmt.Errorf("%w: scope must be %s or %s", ErrValidation, ScopeProjects, ScopeCertifications)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !fields.ValidSlug(c.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and single hyphens", ErrValidation)
	}
	return nil
}

func (c Command) record() Category {
	return Category{Scope: c.Scope, Name: c.Name, Slug: c.Slug}
}
