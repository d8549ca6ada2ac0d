// Package api assembles the admin HTTP surface: domain systems, their routes,
// and the middleware stack in front of them.
package api

import (
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/auth"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/infrastructure"
	"github.com/JaimeStill/portfolio-admin/pkg/middleware"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
)

// API is the assembled HTTP surface.
type API struct {
	Runtime *Runtime
	Domain  *Domain
	Handler http.Handler
}

// New wires every domain system onto infra and builds the request handler.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) *API {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	r := routes.New(runtime.Logger)
	mounts := registerRoutes(r, runtime, domain, cfg)
	public := append([]string{cfg.API.BasePath + "/auth/login", "/healthz", "/readyz"}, mounts...)

	mw := middleware.New()
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.CORS(&cfg.API.CORS))
	mw.Use(middleware.TrimSlash(mounts...))
	mw.Use(auth.Require(runtime.Auth, cfg.Auth.CookieName, runtime.Logger, public...))

	return &API{
		Runtime: runtime,
		Domain:  domain,
		Handler: mw.Apply(r.Build()),
	}
}

// Start registers background work owned by the API with the lifecycle.
func (a *API) Start() error {
	return a.Runtime.Start()
}
