// Package docs manages the documentation site: ordered sections and the pages
// filed under them. Page bodies are document trees whose images are uploaded
// to the docs bucket on save.
package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/google/uuid"
)

// SortStep is the gap left between consecutive sort orders so items can be
// inserted between neighbours without renumbering.
const SortStep = 10

// Status is the publication state of a page.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

var Statuses = []Status{StatusDraft, StatusPublished, StatusArchived}

type Section struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectionCommand is the submitted state of a section. A nil SortOrder places
// a new section last and keeps the position of an existing one.
type SectionCommand struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

func (c *SectionCommand) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = fields.DeriveSlug(c.Slug, c.Name)
	c.Description = fields.Optional(c.Description)

	if c.Name == "" {
		return invalid("name is required")
	}
	if !fields.ValidSlug(c.Slug) {
		return invalid("slug must be lowercase letters, digits and single hyphens")
	}
	return nil
}

type Page struct {
	ID        uuid.UUID     `json:"id"`
	SectionID *uuid.UUID    `json:"section_id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Excerpt   *string       `json:"excerpt"`
	Status    Status        `json:"status"`
	SortOrder int           `json:"sort_order"`
	Content   *content.Node `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// OwnedObjects lists the stored images this page uploaded.
	OwnedObjects fields.List `json:"-"`
}

// PageCommand is the full submitted state of a page form.
type PageCommand struct {
	SectionID *uuid.UUID    `json:"section_id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Excerpt   *string       `json:"excerpt"`
	Status    Status        `json:"status"`
	SortOrder *int          `json:"sort_order"`
	Content   *content.Node `json:"content"`
}

func (c *PageCommand) normalize() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Slug = fields.DeriveSlug(c.Slug, c.Title)
	c.Excerpt = fields.Optional(c.Excerpt)

	if c.Status == "" {
		c.Status = StatusDraft
	}

	if c.Title == "" {
		return invalid("title is required")
	}
	if !fields.ValidSlug(c.Slug) {
		return invalid("slug must be lowercase letters, digits and single hyphens")
	}
	if !fields.OneOf(c.Status, Statuses...) {
		return invalid(fmt.Sprintf("unknown status %q", c.Status))
	}
	if c.SortOrder != nil && *c.SortOrder < 0 {
		return invalid("sort_order cannot be negative")
	}
	if err := content.Validate(c.Content); err != nil {
		return invalid(err.Error())
	}
	return nil
}

func (c *PageCommand) nameHint() string {
	if c.Slug != "" {
		return c.Slug
	}
	if s := uploads.Slugify(c.Title); s != "" {
		return s
	}
	return "doc"
}

// PageSummary is the outline entry of a page.
type PageSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Status    Status    `json:"status"`
	SortOrder int       `json:"sort_order"`
}

// OutlineSection is a section with its pages in sort order.
type OutlineSection struct {
	Section
	Pages []PageSummary `json:"pages"`
}

// Outline is the sidebar of the docs site. Unsectioned holds pages that are
// not filed under any section.
type Outline struct {
	Sections    []OutlineSection `json:"sections"`
	Unsectioned []PageSummary    `json:"unsectioned"`
}

func summarize(p Page) PageSummary {
	return PageSummary{ID: p.ID, Title: p.Title, Slug: p.Slug, Status: p.Status, SortOrder: p.SortOrder}
}

func nextSortOrder(orders []int) int {
	last := 0
	for _, o := range orders {
		last = max(last, o)
	}
	return last + SortStep
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
