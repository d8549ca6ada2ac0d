// Package projects manages portfolio project records. A project's article body
// is a document tree whose images are uploaded to the project bucket when the
// project is saved.
package projects

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/google/uuid"
)

// Status is the lifecycle stage of a project.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusArchived   Status = "archived"
)

// Statuses lists every project status in display order.
var Statuses = []Status{StatusDraft, StatusInProgress, StatusDone, StatusArchived}

type Project struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Description   *string       `json:"description"`
	Status        Status        `json:"status"`
	TechStack     fields.List   `json:"tech_stack"`
	CategoryID    *uuid.UUID    `json:"category_id"`
	CoverImageURL *string       `json:"cover_image_url"`
	DemoURL       *string       `json:"demo_url"`
	GithubURL     *string       `json:"github_url"`
	KeyFeatures   fields.List   `json:"key_features"`
	Content       *content.Node `json:"content"`
	ContentMD     *string       `json:"content_md"`
	StartedAt     *fields.Date  `json:"started_at"`
	FinishedAt    *fields.Date  `json:"finished_at"`
	PublishedAt   *fields.Date  `json:"published_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// OwnedObjects lists the stored images this project uploaded. Only these
	// are removed when the project stops referencing them or is deleted.
	OwnedObjects fields.List `json:"-"`
}

// Command is the full submitted state of a project form. Update replaces every
// field, so omitted optional fields are cleared.
type Command struct {
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description"`
	Status      Status             `json:"status"`
	TechStack   fields.List        `json:"tech_stack"`
	CategoryID  *uuid.UUID         `json:"category_id"`
	Cover       uploads.ImageField `json:"cover"`
	DemoURL     *string            `json:"demo_url"`
	GithubURL   *string            `json:"github_url"`
	KeyFeatures fields.List        `json:"key_features"`
	Content     *content.Node      `json:"content"`
	ContentMD   *string            `json:"content_md"`
	StartedAt   *fields.Date       `json:"started_at"`
	FinishedAt  *fields.Date       `json:"finished_at"`
	PublishedAt *fields.Date       `json:"published_at"`
}

func (c *Command) normalize() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Slug = fields.DeriveSlug(c.Slug, c.Title)
	c.Description = fields.Optional(c.Description)
	c.ContentMD = fields.Optional(c.ContentMD)
	c.TechStack = c.TechStack.Clean()
	c.KeyFeatures = c.KeyFeatures.Clean()

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

	var err error
	if c.DemoURL, err = fields.OptionalURL("demo_url", c.DemoURL); err != nil {
		return invalid(err.Error())
	}
	if c.GithubURL, err = fields.OptionalURL("github_url", c.GithubURL); err != nil {
		return invalid(err.Error())
	}
	if c.Cover.URL != nil && *c.Cover.URL != "" && !fields.ValidURL(*c.Cover.URL) {
		return invalid("cover url must be an http or https address")
	}
	if err := fields.Ordered("started_at", c.StartedAt, "finished_at", c.FinishedAt); err != nil {
		return invalid(err.Error())
	}
	if err := content.Validate(c.Content); err != nil {
		return invalid(err.Error())
	}
	return nil
}

// nameHint prefixes the stored names of the project's images.
func (c *Command) nameHint() string {
	if c.Slug != "" {
		return c.Slug
	}
	if s := uploads.Slugify(c.Title); s != "" {
		return s
	}
	return "project"
}

func (c *Command) record() Project {
	return Project{
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Status:      c.Status,
		TechStack:   c.TechStack,
		CategoryID:  c.CategoryID,
		DemoURL:     c.DemoURL,
		GithubURL:   c.GithubURL,
		KeyFeatures: c.KeyFeatures,
		Content:     c.Content,
		ContentMD:   c.ContentMD,
		StartedAt:   c.StartedAt,
		FinishedAt:  c.FinishedAt,
		PublishedAt: c.PublishedAt,
	}
}

// images lists the stored addresses p references.
func (p *Project) images() []string {
	addresses := content.Sources(p.Content)
	if p.CoverImageURL != nil {
		addresses = append(addresses, *p.CoverImageURL)
	}
	return addresses
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
