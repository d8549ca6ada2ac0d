// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, object storage, session store)
// that domain systems require.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/internal/auth"
	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/migrations"
	"github.com/JaimeStill/portfolio-admin/pkg/database"
	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/JaimeStill/portfolio-admin/pkg/logging"
	"github.com/JaimeStill/portfolio-admin/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// Infrastructure holds the core systems required by all domain modules.
// Redis is nil when admin auth is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Redis     *redis.Client
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	var opts []database.Option
	if cfg.Database.AutoMigrate {
		opts = append(opts, database.WithMigrations(migrations.FS))
	}

	db, err := database.New(&cfg.Database, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var client *redis.Client
	if cfg.Auth.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeoutDuration())
		defer cancel()

		if client, err = auth.Connect(ctx, cfg.Auth.RedisURL); err != nil {
			return nil, fmt.Errorf("session store init failed: %w", err)
		}
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Redis:     client,
	}, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if i.Redis != nil {
		i.Lifecycle.OnShutdown(func() {
			<-i.Lifecycle.Context().Done()
			if err := i.Redis.Close(); err != nil {
				i.Logger.Error("session store close failed", "error", err)
				return
			}
			i.Logger.Info("session store closed")
		})
	}
	return nil
}
