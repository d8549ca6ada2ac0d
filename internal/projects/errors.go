package projects

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrDuplicate   = errors.New("project slug already exists")
	ErrValidation  = errors.New("invalid project")
	ErrPersistence = errors.New("project persistence failed")
)

// MapHTTPStatus converts project and upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrPersistence) {
		return http.StatusInternalServerError
	}
	return uploads.MapHTTPStatus(err)
}
