package api

import (
	"github.com/JaimeStill/portfolio-admin/internal/auth"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/infrastructure"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific state: pagination limits,
// the edit sessions that stage images between saves, and admin auth.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Sessions   *uploads.Sessions
	Auth       auth.System
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	var store auth.Store
	if infra.Redis != nil {
		store = auth.NewRedisStore(infra.Redis, cfg.Auth.KeyPrefix)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Redis:     infra.Redis,
		},
		Pagination: cfg.API.Pagination,
		Sessions:   uploads.NewSessions(cfg.API.UploadSessionTTLDuration(), logger),
		Auth:       auth.New(cfg.Auth, store, logger),
	}
}

// Start registers the runtime's own background work with the lifecycle.
func (r *Runtime) Start() error {
	return r.Sessions.Start(r.Lifecycle)
}
