package certifications

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
)

var (
	ErrNotFound          = errors.New("certification not found")
	ErrValidation        = errors.New("invalid certification")
	ErrInvalidCredential = errors.New("credential file is not a readable PDF")
	ErrPersistence       = errors.New("certification persistence failed")
)

// MapHTTPStatus converts certification and upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidCredential) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrPersistence) {
		return http.StatusInternalServerError
	}
	return uploads.MapHTTPStatus(err)
}
