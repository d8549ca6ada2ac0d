package docs

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for doc sections, pages and the outline.
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
		logger:     logger.With("handler", "docs"),
		pagination: pagination,
	}
}

// SavePageRequest is a page form submission bound to an edit session.
type SavePageRequest struct {
	SessionID *uuid.UUID `json:"session_id"`
	PageCommand
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Tags:        []string{"Docs"},
		Description: "Documentation sections and pages",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/outline", Handler: h.Outline},
		},
		Children: []routes.Group{
			{
				Prefix: "/sections",
				Tags:   []string{"Docs"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListSections},
					{Method: "POST", Pattern: "", Handler: h.CreateSection},
					{Method: "GET", Pattern: "/{id}", Handler: h.FindSection},
					{Method: "PUT", Pattern: "/{id}", Handler: h.UpdateSection},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteSection},
				},
			},
			{
				Prefix: "/pages",
				Tags:   []string{"Docs"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListPages},
					{Method: "POST", Pattern: "", Handler: h.CreatePage},
					{Method: "POST", Pattern: "/search", Handler: h.SearchPages},
					{Method: "GET", Pattern: "/{id}", Handler: h.FindPage},
					{Method: "PUT", Pattern: "/{id}", Handler: h.UpdatePage},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeletePage},
				},
			},
		},
	}
}

func (h *Handler) Outline(w http.ResponseWriter, r *http.Request) {
	outline, err := h.sys.Outline(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, outline)
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sys.ListSections(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sections)
}

func (h *Handler) FindSection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.FindSection(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var cmd SectionCommand
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.CreateSection(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, s)
}

func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd SectionCommand
	if err := handlers.DecodeJSON(w, r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.UpdateSection(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.DeleteSection(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.ListPages(r.Context(), page, PageFiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) SearchPages(w http.ResponseWriter, r *http.Request) {
	var page pagination.PageRequest
	if err := handlers.DecodeJSON(w, r, &page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.ListPages(r.Context(), page, PageFiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) FindPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.FindPage(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req SavePageRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var p *Page
	err := h.sessions.Save(req.SessionID, func(images uploads.Source) error {
		var err error
		p, err = h.sys.CreatePage(r.Context(), req.PageCommand, images)
		return err
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req SavePageRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var p *Page
	err = h.sessions.Save(req.SessionID, func(images uploads.Source) error {
		var err error
		p, err = h.sys.UpdatePage(r.Context(), id, req.PageCommand, images)
		return err
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.DeletePage(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
