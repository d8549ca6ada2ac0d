package docs

import (
	"net/url"

	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

var sectionProjection = query.NewProjectionMap("public", "doc_sections", "s").
	Project("id", "Id").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("description", "Description").
	Project("sort_order", "SortOrder").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var pageProjection = query.NewProjectionMap("public", "doc_pages", "dp").
	Project("id", "Id").
	Project("section_id", "SectionId").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("excerpt", "Excerpt").
	Project("status", "Status").
	Project("sort_order", "SortOrder").
	Project("content_json", "Content").
	Project("owned_objects", "OwnedObjects").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var bySortOrder = []query.SortField{{Field: "SortOrder"}, {Field: "CreatedAt"}}

func scanSection(s repository.Scanner) (Section, error) {
	var sec Section
	err := s.Scan(
		&sec.ID,
		&sec.Name,
		&sec.Slug,
		&sec.Description,
		&sec.SortOrder,
		&sec.CreatedAt,
		&sec.UpdatedAt,
	)
	return sec, err
}

func scanPage(s repository.Scanner) (Page, error) {
	var (
		p    Page
		body content.Document
	)
	err := s.Scan(
		&p.ID,
		&p.SectionID,
		&p.Title,
		&p.Slug,
		&p.Excerpt,
		&p.Status,
		&p.SortOrder,
		&body,
		&p.OwnedObjects,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Content = body.Root
	return p, err
}

// SectionSchema maps sections onto the doc_sections table.
var SectionSchema = repository.Schema[Section]{
	Projection:  sectionProjection,
	DefaultSort: bySortOrder[0],
	Search:      []string{"Name", "Slug"},
	Columns:     []string{"name", "slug", "description", "sort_order"},
	Values: func(s Section) []any {
		return []any{s.Name, s.Slug, s.Description, s.SortOrder}
	},
	Scan: scanSection,
}

// PageSchema maps pages onto the doc_pages table.
var PageSchema = repository.Schema[Page]{
	Projection:  pageProjection,
	DefaultSort: query.SortField{Field: "UpdatedAt", Descending: true},
	Search:      []string{"Title", "Slug", "Excerpt"},
	Columns: []string{
		"section_id", "title", "slug", "excerpt", "status", "sort_order", "content_json", "owned_objects",
	},
	Values: func(p Page) []any {
		return []any{
			p.SectionID, p.Title, p.Slug, p.Excerpt, string(p.Status), p.SortOrder,
			content.Document{Root: p.Content}, p.OwnedObjects,
		}
	},
	Scan: scanPage,
}

func SectionID(s Section) uuid.UUID         { return s.ID }
func SetSectionID(s *Section, id uuid.UUID) { s.ID = id }
func PageID(p Page) uuid.UUID               { return p.ID }
func SetPageID(p *Page, id uuid.UUID)       { p.ID = id }

// PageFilters narrows page queries. Unsectioned selects pages without a
// section and takes precedence over SectionID.
type PageFilters struct {
	SectionID   *uuid.UUID
	Unsectioned bool
	Status      *Status
	Title       *string
}

// PageFiltersFromQuery extracts page filters from URL query parameters.
// section_id=none selects unsectioned pages.
func PageFiltersFromQuery(values url.Values) PageFilters {
	var f PageFilters

	switch s := values.Get("section_id"); s {
	case "":
	case "none":
		f.Unsectioned = true
	default:
		if id, err := uuid.Parse(s); err == nil {
			f.SectionID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}
	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func (f PageFilters) Apply(b *query.Builder) *query.Builder {
	switch {
	case f.Unsectioned:
		b.WhereNull("SectionId")
	case f.SectionID != nil:
		b.WhereEquals("SectionId", *f.SectionID)
	}
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	return b.WhereContains("Title", f.Title)
}

// Matches reports whether p satisfies the section and status criteria of f.
func (f PageFilters) Matches(p Page) bool {
	switch {
	case f.Unsectioned && p.SectionID != nil:
		return false
	case !f.Unsectioned && f.SectionID != nil && (p.SectionID == nil || *p.SectionID != *f.SectionID):
		return false
	}
	return f.Status == nil || p.Status == *f.Status
}
