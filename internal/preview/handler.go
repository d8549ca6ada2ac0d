package preview

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/docs"
	"github.com/JaimeStill/portfolio-admin/internal/projects"
	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/google/uuid"
)

// Handler renders unsaved bodies and the stored bodies of projects and doc
// pages.
type Handler struct {
	renderer *Renderer
	projects projects.System
	docs     docs.System
	logger   *slog.Logger
}

func NewHandler(renderer *Renderer, projects projects.System, docs docs.System, logger *slog.Logger) *Handler {
	return &Handler{
		renderer: renderer,
		projects: projects,
		docs:     docs,
		logger:   logger.With("handler", "preview"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Preview"},
		Description: "Sanitized HTML renderings of article bodies",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/preview", Handler: h.Render},
			{Method: "GET", Pattern: "/projects/{id}/preview", Handler: h.Project},
			{Method: "GET", Pattern: "/docs/pages/{id}/preview", Handler: h.Page},
		},
	}
}

func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.respond(w, req)
}

func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.projects.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, projects.MapHTTPStatus(err), err)
		return
	}

	h.respond(w, Request{Content: p.Content, ContentMD: p.ContentMD})
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.docs.FindPage(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, docs.MapHTTPStatus(err), err)
		return
	}

	h.respond(w, Request{Content: p.Content})
}

func (h *Handler) respond(w http.ResponseWriter, req Request) {
	result, err := h.renderer.Render(req)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
