package config

import "github.com/JaimeStill/portfolio-admin/internal/auth"

var authEnv = &auth.Env{
	Enabled:      "AUTH_ENABLED",
	Email:        "AUTH_EMAIL",
	PasswordHash: "AUTH_PASSWORD_HASH",
	SessionTTL:   "AUTH_SESSION_TTL",
	RedisURL:     "AUTH_REDIS_URL",
	CookieName:   "AUTH_COOKIE_NAME",
	CookieSecure: "AUTH_COOKIE_SECURE",
}
