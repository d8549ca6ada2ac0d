package categories

import (
	"net/url"

	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("public", "categories", "c").
	Project("id", "Id").
	Project("scope", "Scope").
	Project("name", "Name").
	Project("slug", "Slug").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(&c.ID, &c.Scope, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Schema maps categories onto the categories table.
var Schema = repository.Schema[Category]{
	Projection:  projection,
	DefaultSort: query.SortField{Field: "Name"},
	Search:      []string{"Name", "Slug"},
	Columns:     []string{"scope", "name", "slug"},
	Values: func(c Category) []any {
		return []any{string(c.Scope), c.Name, c.Slug}
	},
	Scan: scanCategory,
}

// RecordID and SetRecordID access the id of a Category for table doubles.
func RecordID(c Category) uuid.UUID         { return c.ID }
func SetRecordID(c *Category, id uuid.UUID) { c.ID = id }

// Filters narrows category queries.
type Filters struct {
	Scope *Scope
	Slug  *string
}

// FiltersFromQuery extracts category filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := values.Get("scope"); s != "" {
		scope := Scope(s)
		f.Scope = &scope
	}
	if s := values.Get("slug"); s != "" {
		f.Slug = &s
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Scope != nil {
		b.WhereEquals("Scope", string(*f.Scope))
	}
	if f.Slug != nil {
		b.WhereEquals("Slug", *f.Slug)
	}
	return b
}

// Matches reports whether c satisfies f.
func (f Filters) Matches(c Category) bool {
	if f.Scope != nil && c.Scope != *f.Scope {
		return false
	}
	if f.Slug != nil && c.Slug != *f.Slug {
		return false
	}
	return true
}
