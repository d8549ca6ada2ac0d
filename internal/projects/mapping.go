package projects

import (
	"net/url"

	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("public", "projects", "p").
	Project("id", "Id").
	Project("title", "Title").
	Project("slug", "Slug").
	Project("description", "Description").
	Project("status", "Status").
	Project("tech_stack", "TechStack").
	Project("category_id", "CategoryId").
	Project("cover_image_url", "CoverImageUrl").
	Project("demo_url", "DemoUrl").
	Project("github_url", "GithubUrl").
	Project("key_features", "KeyFeatures").
	Project("content_json", "Content").
	Project("content_md", "ContentMd").
	Project("started_at", "StartedAt").
	Project("finished_at", "FinishedAt").
	Project("published_at", "PublishedAt").
	Project("owned_objects", "OwnedObjects").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanProject(s repository.Scanner) (Project, error) {
	var (
		p    Project
		body content.Document
	)
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.Status,
		&p.TechStack,
		&p.CategoryID,
		&p.CoverImageURL,
		&p.DemoURL,
		&p.GithubURL,
		&p.KeyFeatures,
		&body,
		&p.ContentMD,
		&p.StartedAt,
		&p.FinishedAt,
		&p.PublishedAt,
		&p.OwnedObjects,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Content = body.Root
	return p, err
}

// Schema maps projects onto the projects table.
var Schema = repository.Schema[Project]{
	Projection:  projection,
	DefaultSort: query.SortField{Field: "UpdatedAt", Descending: true},
	Search:      []string{"Title", "Slug", "Description"},
	Columns: []string{
		"title", "slug", "description", "status", "tech_stack", "category_id",
		"cover_image_url", "demo_url", "github_url", "key_features",
		"content_json", "content_md", "started_at", "finished_at", "published_at",
		"owned_objects",
	},
	Values: func(p Project) []any {
		return []any{
			p.Title, p.Slug, p.Description, string(p.Status), p.TechStack, p.CategoryID,
			p.CoverImageURL, p.DemoURL, p.GithubURL, p.KeyFeatures,
			content.Document{Root: p.Content}, p.ContentMD, p.StartedAt, p.FinishedAt, p.PublishedAt,
			p.OwnedObjects,
		}
	},
	Scan: scanProject,
}

func RecordID(p Project) uuid.UUID         { return p.ID }
func SetRecordID(p *Project, id uuid.UUID) { p.ID = id }

// Filters narrows project queries.
type Filters struct {
	Status     *Status
	CategoryID *uuid.UUID
	Title      *string
}

// FiltersFromQuery extracts project filters from URL query parameters.
// Malformed category ids are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}
	if c := values.Get("category_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.CategoryID = &id
		}
	}
	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	if f.CategoryID != nil {
		b.WhereEquals("CategoryId", *f.CategoryID)
	}
	return b.WhereContains("Title", f.Title)
}
