package auth

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
)

type Handler struct {
	sys    System
	cfg    Config
	logger *slog.Logger
}

func NewHandler(sys System, cfg Config, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		cfg:    cfg,
		logger: logger.With("handler", "auth"),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity describes the caller. Session is nil when auth is disabled.
type Identity struct {
	AuthEnabled bool     `json:"auth_enabled"`
	Session     *Session `json:"session,omitempty"`
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/auth",
		Tags:        []string{"Auth"},
		Description: "Admin login sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/login", Handler: h.Login},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.Me},
		},
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.sys.Enabled() {
		handlers.RespondJSON(w, http.StatusOK, Identity{})
		return
	}

	var req LoginRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	login, err := h.sys.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    login.Token,
		Path:     "/",
		Expires:  login.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	handlers.RespondJSON(w, http.StatusOK, login)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Logout(r.Context(), Token(r, h.cfg.CookieName)); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if !h.sys.Enabled() {
		handlers.RespondJSON(w, http.StatusOK, Identity{})
		return
	}

	session, ok := FromContext(r.Context())
	if !ok {
		var err error
		if session, err = h.sys.Current(r.Context(), Token(r, h.cfg.CookieName)); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, Identity{AuthEnabled: true, Session: session})
}
