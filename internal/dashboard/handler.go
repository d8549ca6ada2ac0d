package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "dashboard"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/dashboard",
		Tags:        []string{"Dashboard"},
		Description: "Content summary for the admin landing page",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Summary},
		},
	}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sys.Summary(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
