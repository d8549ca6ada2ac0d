// Package database manages the Postgres connection pool and schema migrations.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady indicates the database has not finished connecting.
var ErrNotReady = errors.New("database not ready")

// System owns the connection pool.
type System interface {
	Connection() *sql.DB
	Ping(ctx context.Context) error
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	db          *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
	migrations  fs.FS
}

// Option configures a database System.
type Option func(*database)

// WithMigrations applies the SQL migrations in fsys during Start.
func WithMigrations(fsys fs.FS) Option {
	return func(d *database) {
		d.migrations = fsys
	}
}

// New opens the pool described by cfg. No connection is made until Start.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (System, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	d := &database{
		db:          db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Open creates a pgx-backed *sql.DB with the configured pool limits.
func Open(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return db, nil
}

func (d *database) Connection() *sql.DB {
	return d.db
}

func (d *database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

// Start connects and migrates during startup and closes the pool on shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.Ping(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		if d.migrations != nil {
			version, err := Migrate(d.db, d.migrations)
			if err != nil {
				d.logger.Error("database migration failed", "error", err)
				return
			}
			d.logger.Info("database migrated", "version", version)
		}

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")
		if err := d.db.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}

// Migrate applies every pending up migration in fsys and returns the resulting version.
func Migrate(db *sql.DB, fsys fs.FS) (uint, error) {
	m, err := newMigrator(db, fsys)
	if err != nil {
		return 0, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	return version(m)
}

// Rollback reverts the given number of migrations.
func Rollback(db *sql.DB, fsys fs.FS, steps int) (uint, error) {
	m, err := newMigrator(db, fsys)
	if err != nil {
		return 0, err
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("rollback migrations: %w", err)
	}

	return version(m)
}

// Version reports the current schema version and whether it is dirty.
func Version(db *sql.DB, fsys fs.FS) (uint, bool, error) {
	m, err := newMigrator(db, fsys)
	if err != nil {
		return 0, false, err
	}

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrator(db *sql.DB, fsys fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func version(m *migrate.Migrate) (uint, error) {
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return v, err
}
