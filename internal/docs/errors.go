package docs

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
)

var (
	ErrSectionNotFound = errors.New("doc section not found")
	ErrPageNotFound    = errors.New("doc page not found")
	ErrDuplicate       = errors.New("slug already exists")
	ErrValidation      = errors.New("invalid doc")
	ErrPersistence     = errors.New("doc persistence failed")
)

// MapHTTPStatus converts docs and upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrSectionNotFound) || errors.Is(err, ErrPageNotFound) {
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
