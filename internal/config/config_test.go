package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "20s"

[server]
port = 9090

[database]
name = "portfolio"
user = "portfolio"

[storage]
max_upload_size = "5MB"

[storage.buckets]
docs = "guides"

[logging]
level = "debug"

[api]
base_path = "/admin-api"

[api.pagination]
default_page_size = 10
max_page_size = 50
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != ":9090" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.API.BasePath != "/admin-api" {
		t.Errorf("BasePath = %q", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 10 || cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("Pagination = %+v", cfg.API.Pagination)
	}
	if cfg.API.UploadSessionTTLDuration() != 2*time.Hour {
		t.Errorf("UploadSessionTTL = %v", cfg.API.UploadSessionTTLDuration())
	}
	if cfg.Storage.MaxUploadSizeBytes() != 5_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.Storage.MaxUploadSizeBytes())
	}
	if cfg.Storage.Backend != storage.BackendFilesystem {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Auth.Enabled {
		t.Error("auth enabled by default")
	}
}

func TestLoad_DefaultBuckets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := map[string]string{
		config.BucketProjects:       "project-images",
		config.BucketDocs:           "guides",
		config.BucketCertifications: "cert-images",
	}
	for name, want := range tests {
		if got := cfg.Storage.Bucket(name); got != want {
			t.Errorf("Bucket(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, "config.staging.toml", `
[server]
port = 8443

[logging]
format = "json"
`)
	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8443 {
		t.Errorf("Port = %d, want 8443", cfg.Server.Port)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, baseConfig)
	writeFile(t, dir, config.DotEnvFile, "DATABASE_HOST=db.internal\nAPI_UPLOAD_SESSION_TTL=30m\n")
	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_HOST", "")
	t.Setenv("API_UPLOAD_SESSION_TTL", "")
	os.Unsetenv("DATABASE_HOST")
	os.Unsetenv("API_UPLOAD_SESSION_TTL")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want value from .env", cfg.Database.Host)
	}
	if cfg.API.UploadSessionTTLDuration() != 30*time.Minute {
		t.Errorf("UploadSessionTTL = %v", cfg.API.UploadSessionTTLDuration())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing database name", `[database]
user = "portfolio"`},
		{"bad session ttl", baseConfig + "\n" + `[auth]
session_ttl = "soon"`},
		{"auth without hash", baseConfig + "\n" + `[auth]
enabled = true
email = "admin@example.com"`},
		{"bad upload size", `[database]
name = "portfolio"
user = "portfolio"

[storage]
max_upload_size = "lots"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, config.BaseConfigFile, tt.body)
			t.Chdir(dir)
			t.Setenv(config.EnvServiceEnv, "")

			if _, err := config.Load(); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Error("Load() succeeded without config.toml")
	}
}

func TestAPIConfig_Merge(t *testing.T) {
	base := config.APIConfig{BasePath: "/api", UploadSessionTTL: "1h", DashboardRecent: 8}
	base.Merge(&config.APIConfig{UploadSessionTTL: "3h"})

	if base.BasePath != "/api" || base.UploadSessionTTL != "3h" || base.DashboardRecent != 8 {
		t.Errorf("merged = %+v", base)
	}
}
