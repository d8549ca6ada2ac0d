package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/portfolio-admin/pkg/middleware"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig contains settings for the admin API surface.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`

	// UploadSessionTTL is how long an idle edit session keeps its staged images.
	UploadSessionTTL string `toml:"upload_session_ttl"`

	// DashboardRecent caps the recent activity list.
	DashboardRecent int `toml:"dashboard_recent"`
}

func (c *APIConfig) UploadSessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.UploadSessionTTL)
	return d
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.UploadSessionTTL != "" {
		c.UploadSessionTTL = overlay.UploadSessionTTL
	}
	if overlay.DashboardRecent != 0 {
		c.DashboardRecent = overlay.DashboardRecent
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.UploadSessionTTL == "" {
		c.UploadSessionTTL = "2h"
	}
	if c.DashboardRecent == 0 {
		c.DashboardRecent = 8
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("API_UPLOAD_SESSION_TTL"); v != "" {
		c.UploadSessionTTL = v
	}
	if v := os.Getenv("API_DASHBOARD_RECENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DashboardRecent = n
		}
	}
}

func (c *APIConfig) validate() error {
	d, err := time.ParseDuration(c.UploadSessionTTL)
	if err != nil {
		return fmt.Errorf("invalid upload_session_ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("upload_session_ttl must be positive")
	}
	if c.DashboardRecent < 1 {
		return fmt.Errorf("dashboard_recent must be positive")
	}
	return nil
}
