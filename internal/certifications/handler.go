package certifications

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for certifications.
type Handler struct {
	sys        System
	sessions   *uploads.Sessions
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, sessions *uploads.Sessions, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		sessions:   sessions,
		logger:     logger.With("handler", "certifications"),
		pagination: pagination,
	}
}

// SaveRequest is a certification form submission. SessionID names the edit
// session holding the staged badge and credential file.
type SaveRequest struct {
	SessionID *uuid.UUID `json:"session_id"`
	Command
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/certifications",
		Tags:        []string{"Certifications"},
		Description: "Certifications with badge images and credential files",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var page pagination.PageRequest
	if err := handlers.DecodeJSON(w, r, &page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), page, FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var c *Certification
	err := h.sessions.Save(req.SessionID, func(images uploads.Source) error {
		var err error
		c, err = h.sys.Create(r.Context(), req.Command, images)
		return err
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req SaveRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var c *Certification
	err = h.sessions.Save(req.SessionID, func(images uploads.Source) error {
		var err error
		c, err = h.sys.Update(r.Context(), id, req.Command, images)
		return err
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Delete(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
