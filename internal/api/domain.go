package api

import (
	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/JaimeStill/portfolio-admin/internal/certifications"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/dashboard"
	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/preview"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Categories     categories.System
	Projects       projects.System
	Docs           docs.System
	Certifications certifications.System
	Dashboard      dashboard.System
	Renderer       *preview.Renderer
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	reconciler := func(name string) *uploads.Reconciler {
		return uploads.NewReconciler(runtime.Storage, cfg.Storage.Bucket(name), runtime.Logger)
	}

	categoriesSys := categories.New(
		repository.NewTable(db, categories.Schema),
		runtime.Logger,
	)

	projectsSys := projects.New(
		repository.NewTable(db, projects.Schema),
		reconciler(config.BucketProjects),
		categoriesSys,
		runtime.Logger,
		runtime.Pagination,
	)

	docsSys := docs.New(
		repository.NewTable(db, docs.SectionSchema),
		repository.NewTable(db, docs.PageSchema),
		reconciler(config.BucketDocs),
		runtime.Logger,
		runtime.Pagination,
	)

	certificationsSys := certifications.New(
		repository.NewTable(db, certifications.Schema),
		reconciler(config.BucketCertifications),
		categoriesSys,
		runtime.Logger,
		runtime.Pagination,
	)

	dashboardSys := dashboard.New(
		projectsSys,
		docsSys,
		certificationsSys,
		cfg.API.DashboardRecent,
		runtime.Logger,
	)

	return &Domain{
		Categories:     categoriesSys,
		Projects:       projectsSys,
		Docs:           docsSys,
		Certifications: certificationsSys,
		Dashboard:      dashboardSys,
		Renderer:       preview.NewRenderer(),
	}
}
