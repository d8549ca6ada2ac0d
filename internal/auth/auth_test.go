package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-admin/internal/auth"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "correct horse"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, enabled bool) auth.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	cfg := auth.Config{Enabled: enabled, Email: adminEmail, PasswordHash: string(hash), SessionTTL: "1h"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func setup(t *testing.T, enabled bool) (auth.System, auth.Config, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := auth.Connect(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	cfg := testConfig(t, enabled)
	return auth.New(cfg, auth.NewRedisStore(client, cfg.KeyPrefix), testLogger()), cfg, mr
}

func TestLogin(t *testing.T) {
	sys, cfg, mr := setup(t, true)
	ctx := context.Background()

	login, err := sys.Login(ctx, " Admin@Example.com ", adminPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.Token == "" || login.Email != adminEmail {
		t.Errorf("login = %+v", login)
	}

	keys := mr.Keys()
	if len(keys) != 1 || !strings.HasPrefix(keys[0], cfg.KeyPrefix) {
		t.Fatalf("keys = %v", keys)
	}
	if strings.Contains(keys[0], login.Token) {
		t.Error("raw token stored as key")
	}
	if ttl := mr.TTL(keys[0]); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	session, err := sys.Current(ctx, login.Token)
	if err != nil || session.Email != adminEmail {
		t.Errorf("Current() = %+v, %v", session, err)
	}
}

func TestLogin_Rejected(t *testing.T) {
	sys, _, mr := setup(t, true)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", adminEmail, "wrong"},
		{"wrong email", "other@example.com", adminPassword},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
	if len(mr.Keys()) != 0 {
		t.Error("rejected login stored a session")
	}
}

func TestSessionExpiresAndLogout(t *testing.T) {
	sys, _, mr := setup(t, true)
	ctx := context.Background()

	first, _ := sys.Login(ctx, adminEmail, adminPassword)
	mr.FastForward(2 * time.Hour)
	if _, err := sys.Current(ctx, first.Token); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Current() after expiry = %v, want ErrUnauthenticated", err)
	}

	second, _ := sys.Login(ctx, adminEmail, adminPassword)
	if err := sys.Logout(ctx, second.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := sys.Current(ctx, second.Token); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Current() after logout = %v, want ErrUnauthenticated", err)
	}
}

func TestStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := auth.NewRedisStore(client, "s:")
	mr.Close()

	_, err := store.Lookup(context.Background(), "abc")
	if !errors.Is(err, auth.ErrSessionStore) {
		t.Fatalf("Lookup() error = %v, want ErrSessionStore", err)
	}
	if auth.MapHTTPStatus(err) != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", auth.MapHTTPStatus(err))
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_AUTH_ENABLED", "true")
	t.Setenv("TEST_AUTH_EMAIL", adminEmail)
	t.Setenv("TEST_AUTH_HASH", "not-a-hash")

	cfg := auth.Config{}
	err := cfg.Finalize(&auth.Env{Enabled: "TEST_AUTH_ENABLED", Email: "TEST_AUTH_EMAIL", PasswordHash: "TEST_AUTH_HASH"})
	if err == nil {
		t.Fatal("Finalize() accepted an invalid hash")
	}

	disabled := auth.Config{}
	if err := disabled.Finalize(nil); err != nil {
		t.Fatalf("Finalize() disabled error = %v", err)
	}
	if disabled.SessionTTLDuration() != 12*time.Hour || disabled.CookieName == "" {
		t.Errorf("defaults = %+v", disabled)
	}
}

func newServer(sys auth.System, cfg auth.Config) http.Handler {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", auth.NewHandler(sys, cfg, testLogger()).Routes())
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return auth.Require(sys, cfg.CookieName, testLogger(), "/api/auth/login", "/healthz")(mux)
}

func TestRequire(t *testing.T) {
	sys, cfg, _ := setup(t, true)
	srv := newServer(sys, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("public status = %d, want 200", rec.Code)
	}

	body := `{"email":"` + adminEmail + `","password":"` + adminPassword + `"}`
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly {
		t.Fatalf("cookies = %+v", cookies)
	}
	var login auth.Login
	json.NewDecoder(rec.Body).Decode(&login)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("cookie status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	var me auth.Identity
	json.NewDecoder(rec.Body).Decode(&me)
	if rec.Code != http.StatusOK || !me.AuthEnabled || me.Session == nil || me.Session.Email != adminEmail {
		t.Errorf("me = %d %+v", rec.Code, me)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("logout status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout status = %d, want 401", rec.Code)
	}
}

func TestRequire_Disabled(t *testing.T) {
	sys, cfg, _ := setup(t, false)
	srv := newServer(sys, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	var me auth.Identity
	json.NewDecoder(rec.Body).Decode(&me)
	if me.AuthEnabled {
		t.Error("me reports auth enabled")
	}
}
