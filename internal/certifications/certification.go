// Package certifications manages the exams, trainings and other credentials
// listed on the portfolio. A certification carries an optional badge image
// and an optional credential PDF, both uploaded to the certification bucket.
package certifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/google/uuid"
)

type Type string

const (
	TypeExam     Type = "exam"
	TypeTraining Type = "training"
	TypeOther    Type = "other"
)

var Types = []Type{TypeExam, TypeTraining, TypeOther}

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusPassed     Status = "passed"
	StatusExpired    Status = "expired"
)

var Statuses = []Status{StatusPlanned, StatusInProgress, StatusPassed, StatusExpired}

type Certification struct {
	ID                uuid.UUID    `json:"id"`
	CertType          Type         `json:"cert_type"`
	Name              string       `json:"name"`
	Vendor            string       `json:"vendor"`
	CategoryID        *uuid.UUID   `json:"category_id"`
	Level             *string      `json:"level"`
	Status            Status       `json:"status"`
	IssueDate         *fields.Date `json:"issue_date"`
	ExpiryDate        *fields.Date `json:"expiry_date"`
	CredentialID      *string      `json:"credential_id"`
	CredentialURL     *string      `json:"credential_url"`
	Score             *float64     `json:"score"`
	Highlight         bool         `json:"highlight"`
	Notes             *string      `json:"notes"`
	BadgeImageURL     *string      `json:"badge_image_url"`
	CredentialFileURL *string      `json:"credential_file_url"`
	CredentialPages   *int         `json:"credential_pages"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`

	// OwnedObjects lists the badge and credential files this record uploaded.
	OwnedObjects fields.List `json:"-"`
}

// Command is the full submitted state of a certification form.
type Command struct {
	CertType       Type               `json:"cert_type"`
	Name           string             `json:"name"`
	Vendor         string             `json:"vendor"`
	CategoryID     *uuid.UUID         `json:"category_id"`
	Level          *string            `json:"level"`
	Status         Status             `json:"status"`
	IssueDate      *fields.Date       `json:"issue_date"`
	ExpiryDate     *fields.Date       `json:"expiry_date"`
	CredentialID   *string            `json:"credential_id"`
	CredentialURL  *string            `json:"credential_url"`
	Score          *float64           `json:"score"`
	Highlight      bool               `json:"highlight"`
	Notes          *string            `json:"notes"`
	Badge          uploads.ImageField `json:"badge"`
	CredentialFile uploads.ImageField `json:"credential_file"`
}

func (c *Command) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Vendor = strings.TrimSpace(c.Vendor)
	c.Level = fields.Optional(c.Level)
	c.CredentialID = fields.Optional(c.CredentialID)
	c.Notes = fields.Optional(c.Notes)

	if c.CertType == "" {
		c.CertType = TypeExam
	}
	if c.Status == "" {
		c.Status = StatusPlanned
	}

	if c.Name == "" {
		return invalid("name is required")
	}
	if c.Vendor == "" {
		return invalid("vendor is required")
	}
	if !fields.OneOf(c.CertType, Types...) {
		return invalid(fmt.Sprintf("unknown cert_type %q", c.CertType))
	}
	if !fields.OneOf(c.Status, Statuses...) {
		return invalid(fmt.Sprintf("unknown status %q", c.Status))
	}
	if c.Score != nil && *c.Score < 0 {
		return invalid("score cannot be negative")
	}

	var err error
	if c.CredentialURL, err = fields.OptionalURL("credential_url", c.CredentialURL); err != nil {
		return invalid(err.Error())
	}
	if c.Badge.URL != nil && *c.Badge.URL != "" && !fields.ValidURL(*c.Badge.URL) {
		return invalid("badge url must be an http or https address")
	}
	if c.CredentialFile.URL != nil && *c.CredentialFile.URL != "" && !fields.ValidURL(*c.CredentialFile.URL) {
		return invalid("credential file url must be an http or https address")
	}
	if err := fields.Ordered("issue_date", c.IssueDate, "expiry_date", c.ExpiryDate); err != nil {
		return invalid(err.Error())
	}
	return nil
}

// nameHint is the slugified name, prefixed to stored object names.
func (c *Command) nameHint() string {
	if s := uploads.Slugify(c.Name); s != "" {
		return s
	}
	return "cert"
}

func (c *Command) record() Certification {
	return Certification{
		CertType:      c.CertType,
		Name:          c.Name,
		Vendor:        c.Vendor,
		CategoryID:    c.CategoryID,
		Level:         c.Level,
		Status:        c.Status,
		IssueDate:     c.IssueDate,
		ExpiryDate:    c.ExpiryDate,
		CredentialID:  c.CredentialID,
		CredentialURL: c.CredentialURL,
		Score:         c.Score,
		Highlight:     c.Highlight,
		Notes:         c.Notes,
	}
}

// objects lists the stored addresses c references.
func (c *Certification) objects() []string {
	var addresses []string
	if c.BadgeImageURL != nil {
		addresses = append(addresses, *c.BadgeImageURL)
	}
	if c.CredentialFileURL != nil {
		addresses = append(addresses, *c.CredentialFileURL)
	}
	return addresses
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
