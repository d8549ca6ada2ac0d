// Package dashboard summarizes the portfolio content for the admin landing
// page: record counts per status and the most recently edited items.
package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Kind names the record type of an activity entry.
type Kind string

const (
	KindProject       Kind = "project"
	KindDocPage       Kind = "doc_page"
	KindCertification Kind = "certification"
)

// Counts is the number of records of one type, in total and per status.
type Counts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Activity is a recently updated record.
type Activity struct {
	Kind      Kind      `json:"kind"`
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Summary struct {
	Projects       Counts     `json:"projects"`
	DocSections    int        `json:"doc_sections"`
	DocPages       Counts     `json:"doc_pages"`
	Certifications Counts     `json:"certifications"`
	Recent         []Activity `json:"recent"`
}
