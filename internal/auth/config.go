package auth

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds admin authentication settings. When Enabled is false every
// request is treated as the admin.
type Config struct {
	Enabled      bool   `toml:"enabled"`
	Email        string `toml:"email"`
	PasswordHash string `toml:"password_hash"`
	SessionTTL   string `toml:"session_ttl"`
	RedisURL     string `toml:"redis_url"`
	KeyPrefix    string `toml:"key_prefix"`
	CookieName   string `toml:"cookie_name"`
	CookieSecure bool   `toml:"cookie_secure"`
}

// Env maps environment variable names for auth configuration.
type Env struct {
	Enabled      string
	Email        string
	PasswordHash string
	SessionTTL   string
	RedisURL     string
	CookieName   string
	CookieSecure string
}

// SessionTTLDuration parses and returns the session lifetime.
func (c *Config) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Email != "" {
		c.Email = overlay.Email
	}
	if overlay.PasswordHash != "" {
		c.PasswordHash = overlay.PasswordHash
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.RedisURL != "" {
		c.RedisURL = overlay.RedisURL
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.CookieSecure {
		c.CookieSecure = true
	}
}

func (c *Config) loadDefaults() {
	if c.SessionTTL == "" {
		c.SessionTTL = "12h"
	}
	if c.RedisURL == "" {
		c.RedisURL = "redis://localhost:6379/0"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "portfolio:session:"
	}
	if c.CookieName == "" {
		c.CookieName = "portfolio_admin"
	}
}

func (c *Config) loadEnv(env *Env) {
	get := func(name string) (string, bool) {
		if name == "" {
			return "", false
		}
		v := os.Getenv(name)
		return v, v != ""
	}
	setBool := func(name string, target *bool) {
		if v, ok := get(name); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*target = b
			}
		}
	}

	setBool(env.Enabled, &c.Enabled)
	setBool(env.CookieSecure, &c.CookieSecure)
	if v, ok := get(env.Email); ok {
		c.Email = v
	}
	if v, ok := get(env.PasswordHash); ok {
		c.PasswordHash = v
	}
	if v, ok := get(env.SessionTTL); ok {
		c.SessionTTL = v
	}
	if v, ok := get(env.RedisURL); ok {
		c.RedisURL = v
	}
	if v, ok := get(env.CookieName); ok {
		c.CookieName = v
	}
}

func (c *Config) validate() error {
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if !c.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email required when auth is enabled")
	}
	if _, err := bcrypt.Cost([]byte(c.PasswordHash)); err != nil {
		return fmt.Errorf("invalid password_hash: %w", err)
	}
	return nil
}
