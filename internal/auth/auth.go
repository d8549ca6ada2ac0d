// Package auth guards the admin API with a single configured administrator.
// Logins verify a bcrypt password hash and issue an opaque session token whose
// session lives in redis until it expires or the admin logs out.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Session is an authenticated admin login.
type Session struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login is a successful login: the session and the token that names it.
type Login struct {
	Token string `json:"token"`
	Session
}

type System interface {
	Enabled() bool
	Login(ctx context.Context, email, password string) (*Login, error)
	Logout(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*Session, error)
}

type system struct {
	cfg    Config
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New creates the auth system. cfg must be finalized.
func New(cfg Config, store Store, logger *slog.Logger) System {
	return &system{
		cfg:    cfg,
		store:  store,
		ttl:    cfg.SessionTTLDuration(),
		logger: logger.With("system", "auth"),
		now:    time.Now,
	}
}

func (s *system) Enabled() bool {
	return s.cfg.Enabled
}

func (s *system) Login(ctx context.Context, email, password string) (*Login, error) {
	email = strings.TrimSpace(email)

	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(email)),
		[]byte(strings.ToLower(s.cfg.Email)),
	) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))

	if !emailOK || passwordErr != nil {
		s.logger.Warn("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := Session{Email: s.cfg.Email, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.store.Save(ctx, hashToken(token), session, s.ttl); err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", "email", session.Email, "expires_at", session.ExpiresAt)
	return &Login{Token: token, Session: session}, nil
}

func (s *system) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, hashToken(token)); err != nil {
		return err
	}
	s.logger.Info("admin logged out")
	return nil
}

func (s *system) Current(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.Lookup(ctx, hashToken(token))
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken keys stored sessions so a leaked store does not leak tokens.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
