package uploads

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/portfolio-admin/pkg/handlers"
	"github.com/JaimeStill/portfolio-admin/pkg/routes"
	"github.com/google/uuid"
)

// Handler exposes edit sessions so the editor can stage images before a save.
type Handler struct {
	sessions      *Sessions
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates an upload session handler.
func NewHandler(sessions *Sessions, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sessions:      sessions,
		logger:        logger.With("handler", "uploads"),
		maxUploadSize: maxUploadSize,
	}
}

// SessionInfo describes an open edit session.
type SessionInfo struct {
	ID      uuid.UUID `json:"id"`
	Pending int       `json:"pending"`
}

// Staged describes an image added to an edit session.
type Staged struct {
	PlaceholderID string `json:"placeholder_id"`
	Name          string `json:"name"`
	ContentType   string `json:"content_type"`
	SizeBytes     int    `json:"size_bytes"`
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/uploads/sessions",
		Tags:        []string{"Uploads"},
		Description: "Edit sessions holding images until the save that references them",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Open},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Close},
			{Method: "POST", Pattern: "/{id}/images", Handler: h.AddImage},
			{Method: "DELETE", Pattern: "/{id}/images/{ref}", Handler: h.RemoveImage},
		},
	}
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Open()
	handlers.RespondJSON(w, http.StatusCreated, SessionInfo{ID: id})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reg, err := h.sessions.Registry(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SessionInfo{ID: id, Pending: reg.Len()})
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sessions.Close(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reg, err := h.sessions.Registry(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	contentType := DetectContentType(header.Header.Get("Content-Type"), data)
	if !Accepted(contentType) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	ref := reg.Register(File{Name: header.Filename, ContentType: contentType, Data: data})
	h.logger.Info("image staged", "session", id, "placeholder", ref, "size", len(data))

	handlers.RespondJSON(w, http.StatusCreated, Staged{
		PlaceholderID: ref,
		Name:          header.Filename,
		ContentType:   contentType,
		SizeBytes:     len(data),
	})
}

func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	reg, err := h.sessions.Registry(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	reg.Remove(r.PathValue("ref"))
	w.WriteHeader(http.StatusNoContent)
}

// Accepted reports whether files of contentType may be staged: images for
// document bodies and single-image fields, PDFs for credential files.
func Accepted(contentType string) bool {
	return IsImage(contentType) || contentType == "application/pdf"
}

// IsImage reports whether contentType names an image format.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// DetectContentType prefers the declared type unless it is missing or generic.
func DetectContentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}
