package certifications

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("public", "certifications", "ct").
	Project("id", "Id").
	Project("cert_type", "CertType").
	Project("name", "Name").
	Project("vendor", "Vendor").
	Project("category_id", "CategoryId").
	Project("level", "Level").
	Project("status", "Status").
	Project("issue_date", "IssueDate").
	Project("expiry_date", "ExpiryDate").
	Project("credential_id", "CredentialId").
	Project("credential_url", "CredentialUrl").
	Project("score", "Score").
	Project("highlight", "Highlight").
	Project("notes", "Notes").
	Project("badge_image_url", "BadgeImageUrl").
	Project("credential_file_url", "CredentialFileUrl").
	Project("credential_pages", "CredentialPages").
	Project("owned_objects", "OwnedObjects").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanCertification(s repository.Scanner) (Certification, error) {
	var c Certification
	err := s.Scan(
		&c.ID,
		&c.CertType,
		&c.Name,
		&c.Vendor,
		&c.CategoryID,
		&c.Level,
		&c.Status,
		&c.IssueDate,
		&c.ExpiryDate,
		&c.CredentialID,
		&c.CredentialURL,
		&c.Score,
		&c.Highlight,
		&c.Notes,
		&c.BadgeImageURL,
		&c.CredentialFileURL,
		&c.CredentialPages,
		&c.OwnedObjects,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Schema maps certifications onto the certifications table. Newest issue
// dates list first.
var Schema = repository.Schema[Certification]{
	Projection:  projection,
	DefaultSort: query.SortField{Field: "IssueDate", Descending: true},
	Search:      []string{"Name", "Vendor", "CredentialId"},
	Columns: []string{
		"cert_type", "name", "vendor", "category_id", "level", "status",
		"issue_date", "expiry_date", "credential_id", "credential_url", "score",
		"highlight", "notes", "badge_image_url", "credential_file_url", "credential_pages",
		"owned_objects",
	},
	Values: func(c Certification) []any {
		return []any{
			string(c.CertType), c.Name, c.Vendor, c.CategoryID, c.Level, string(c.Status),
			c.IssueDate, c.ExpiryDate, c.CredentialID, c.CredentialURL, c.Score,
			c.Highlight, c.Notes, c.BadgeImageURL, c.CredentialFileURL, c.CredentialPages,
			c.OwnedObjects,
		}
	},
	Scan: scanCertification,
}

func RecordID(c Certification) uuid.UUID         { return c.ID }
func SetRecordID(c *Certification, id uuid.UUID) { c.ID = id }

// Filters narrows certification queries.
type Filters struct {
	CertType   *Type
	Status     *Status
	CategoryID *uuid.UUID
	Vendor     *string
	Name       *string
	Highlight  *bool
}

// FiltersFromQuery extracts certification filters from URL query parameters.
// Malformed ids and flags are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("cert_type"); t != "" {
		certType := Type(t)
		f.CertType = &certType
	}
	if s := values.Get("status"); s != "" {
		status := Status(s)
		f.Status = &status
	}
	if c := values.Get("category_id"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.CategoryID = &id
		}
	}
	if v := values.Get("vendor"); v != "" {
		f.Vendor = &v
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if h := values.Get("highlight"); h != "" {
		if b, err := strconv.ParseBool(h); err == nil {
			f.Highlight = &b
		}
	}

	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.CertType != nil {
		b.WhereEquals("CertType", string(*f.CertType))
	}
	if f.Status != nil {
		b.WhereEquals("Status", string(*f.Status))
	}
	if f.CategoryID != nil {
		b.WhereEquals("CategoryId", *f.CategoryID)
	}
	if f.Highlight != nil {
		b.WhereEquals("Highlight", *f.Highlight)
	}
	return b.
		WhereContains("Vendor", f.Vendor).
		WhereContains("Name", f.Name)
}

// Matches reports whether c satisfies the exact-match criteria of f.
func (f Filters) Matches(c Certification) bool {
	switch {
	case f.CertType != nil && c.CertType != *f.CertType:
		return false
	case f.Status != nil && c.Status != *f.Status:
		return false
	case f.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *f.CategoryID):
		return false
	case f.Highlight != nil && c.Highlight != *f.Highlight:
		return false
	}
	return true
}
