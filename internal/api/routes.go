package api

import (
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/auth"
	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/JaimeStill/portfolio-admin/internal/certifications"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/dashboard"
	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/preview"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/JaimeStill/portfolio-admin/pkg/storage"
)

// registerRoutes configures all HTTP routes for the service. It returns the
// mount paths of static subtrees, which are served without an admin session.
func registerRoutes(r routes.System, runtime *Runtime, domain *Domain, cfg *config.Config) []string {
	logger := runtime.Logger

	authHandler := auth.NewHandler(runtime.Auth, cfg.Auth, logger)
	uploadsHandler := uploads.NewHandler(runtime.Sessions, logger, cfg.Storage.MaxUploadSizeBytes())
	categoriesHandler := categories.NewHandler(domain.Categories, logger)
	projectsHandler := projects.NewHandler(domain.Projects, runtime.Sessions, logger, runtime.Pagination)
	docsHandler := docs.NewHandler(domain.Docs, runtime.Sessions, logger, runtime.Pagination)
	certificationsHandler := certifications.NewHandler(domain.Certifications, runtime.Sessions, logger, runtime.Pagination)
	dashboardHandler := dashboard.NewHandler(domain.Dashboard, logger)
	previewHandler := preview.NewHandler(domain.Renderer, domain.Projects, domain.Docs, logger)

	r.RegisterGroup(routes.Group{
		Prefix:      cfg.API.BasePath,
		Description: "Portfolio admin API",
		Children: []routes.Group{
			authHandler.Routes(),
			uploadsHandler.Routes(),
			categoriesHandler.Routes(),
			projectsHandler.Routes(),
			docsHandler.Routes(),
			certificationsHandler.Routes(),
			dashboardHandler.Routes(),
			previewHandler.Routes(),
		},
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, runtime.Lifecycle)
		},
	})

	var mounts []string
	if srv, ok := runtime.Storage.(storage.Server); ok {
		mount := srv.MountPath()
		if mount == "/" {
			logger.Warn("object store mount path is the site root; stored objects are not served")
		} else {
			r.RegisterRoute(routes.Route{
				Method:  "GET",
				Pattern: mount,
				Handler: srv.Handler().ServeHTTP,
			})
			mounts = append(mounts, mount)
		}
	}

	return mounts
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
