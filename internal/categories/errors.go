package categories

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("category not found")
	ErrDuplicate   = errors.New("category slug already exists in scope")
	ErrValidation  = errors.New("invalid category")
	ErrWrongScope  = errors.New("category belongs to another scope")
	ErrPersistence = errors.New("category persistence failed")
)

// MapHTTPStatus converts category errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrWrongScope) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
