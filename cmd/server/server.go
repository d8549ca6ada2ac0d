package main

import (
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/api"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/infrastructure"
	"github.com/JaimeStill/portfolio-admin/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	api   *api.API
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	a := api.New(cfg, infra)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"api", cfg.API.BasePath,
		"storage", cfg.Storage.Backend,
		"auth", cfg.Auth.Enabled,
	)

	return &Server{
		infra: infra,
		api:   a,
		http:  server.New(&cfg.Server, a.Handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.api.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
