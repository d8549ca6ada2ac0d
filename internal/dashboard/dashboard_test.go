package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/JaimeStill/portfolio-admin/internal/certifications"
	"github.com/JaimeStill/portfolio-admin/internal/dashboard"
	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/JaimeStill/portfolio-admin/pkg/repository/repotest"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/JaimeStill/portfolio-admin/pkg/storage/storagetest"
)

type fixture struct {
	sys      dashboard.System
	projects *repotest.Table[projects.Project]
	sections *repotest.Table[docs.Section]
	pages    *repotest.Table[docs.Page]
	certs    *repotest.Table[certifications.Certification]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(recent int) *fixture {
	logger := testLogger()
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	store := storagetest.New()

	f := &fixture{
		projects: repotest.NewTable(projects.RecordID, projects.SetRecordID).
			Match(func(p projects.Project, filter repository.Filter) bool {
				fl := filter.(projects.Filters)
				return fl.Status == nil || p.Status == *fl.Status
			}).
			Order(func(a, b projects.Project) int { return b.UpdatedAt.Compare(a.UpdatedAt) }),
		sections: repotest.NewTable(docs.SectionID, docs.SetSectionID),
		pages: repotest.NewTable(docs.PageID, docs.SetPageID).
			Match(func(p docs.Page, filter repository.Filter) bool {
				return filter.(docs.PageFilters).Matches(p)
			}).
			Order(func(a, b docs.Page) int { return b.UpdatedAt.Compare(a.UpdatedAt) }),
		certs: repotest.NewTable(certifications.RecordID, certifications.SetRecordID).
			Match(func(c certifications.Certification, filter repository.Filter) bool {
				return filter.(certifications.Filters).Matches(c)
			}).
			Order(func(a, b certifications.Certification) int { return b.UpdatedAt.Compare(a.UpdatedAt) }),
	}

	cats := categories.New(repotest.NewTable(categories.RecordID, categories.SetRecordID), logger)

	f.sys = dashboard.New(
		projects.New(f.projects, uploads.NewReconciler(store, "project-images", logger), cats, logger, cfg),
		docs.New(f.sections, f.pages, uploads.NewReconciler(store, "doc-images", logger), logger, cfg),
		certifications.New(f.certs, uploads.NewReconciler(store, "cert-images", logger), cats, logger, cfg),
		recent,
		logger,
	)
	return f
}

func at(hour int) time.Time {
	return time.Date(2026, 5, 1, hour, 0, 0, 0, time.UTC)
}

func TestSummary_Counts(t *testing.T) {
	f := newFixture(5)
	f.projects.Seed(projects.Project{Title: "A", Status: projects.StatusDone})
	f.projects.Seed(projects.Project{Title: "B", Status: projects.StatusDone})
	f.projects.Seed(projects.Project{Title: "C", Status: projects.StatusDraft})
	f.sections.Seed(docs.Section{Name: "Guides", Slug: "guides"})
	f.pages.Seed(docs.Page{Title: "Intro", Status: docs.StatusPublished})
	f.certs.Seed(certifications.Certification{Name: "CKA", Status: certifications.StatusPassed})

	s, err := f.sys.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if s.Projects.Total != 3 || s.Projects.ByStatus["done"] != 2 || s.Projects.ByStatus["draft"] != 1 {
		t.Errorf("projects = %+v", s.Projects)
	}
	if n, ok := s.Projects.ByStatus["archived"]; !ok || n != 0 {
		t.Errorf("archived = %d, %v, want zero entry", n, ok)
	}
	if s.DocSections != 1 || s.DocPages.ByStatus["published"] != 1 {
		t.Errorf("docs = %d sections, %+v", s.DocSections, s.DocPages)
	}
	if s.Certifications.Total != 1 || s.Certifications.ByStatus["passed"] != 1 {
		t.Errorf("certifications = %+v", s.Certifications)
	}
}

func TestSummary_RecentActivity(t *testing.T) {
	f := newFixture(3)
	f.projects.Seed(projects.Project{Title: "Old project", UpdatedAt: at(1)})
	f.projects.Seed(projects.Project{Title: "New project", UpdatedAt: at(9)})
	f.pages.Seed(docs.Page{Title: "Guide", UpdatedAt: at(7)})
	f.certs.Seed(certifications.Certification{Name: "CKA", UpdatedAt: at(8)})

	s, err := f.sys.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	want := []string{"New project", "CKA", "Guide"}
	if len(s.Recent) != len(want) {
		t.Fatalf("recent = %+v, want %d entries", s.Recent, len(want))
	}
	for i, title := range want {
		if s.Recent[i].Title != title {
			t.Errorf("recent[%d] = %q, want %q", i, s.Recent[i].Title, title)
		}
	}
	if s.Recent[1].Kind != dashboard.KindCertification {
		t.Errorf("recent[1].Kind = %q", s.Recent[1].Kind)
	}
}

func TestSummary_Failure(t *testing.T) {
	f := newFixture(5)
	f.certs.Fail(repotest.OpList, errors.New("connection reset"))

	if _, err := f.sys.Summary(context.Background()); err == nil {
		t.Fatal("Summary() error = nil")
	}
}

func TestHandler_Summary(t *testing.T) {
	f := newFixture(5)
	f.projects.Seed(projects.Project{Title: "A", Status: projects.StatusInProgress})

	mux := http.NewServeMux()
	routes.Register(mux, "/api", dashboard.NewHandler(f.sys, testLogger()).Routes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var s dashboard.Summary
	json.NewDecoder(rec.Body).Decode(&s)
	if s.Projects.ByStatus["in_progress"] != 1 {
		t.Errorf("summary = %+v", s)
	}
}
