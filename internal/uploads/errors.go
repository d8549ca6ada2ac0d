package uploads

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUploadFailed    = errors.New("image upload failed")
	ErrSessionNotFound = errors.New("upload session not found")
	ErrSessionBusy     = errors.New("upload session has a save in progress")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
)

// UploadError reports which image aborted a reconciliation pass.
// Position is the 1-based index of the image among the tree's images in
// document order; it is zero for single-image fields.
type UploadError struct {
	Placeholder string
	Position    int
	Name        string
	Err         error
}

func (e *UploadError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s: image %d (placeholder %s, object %s): %v",
			ErrUploadFailed, e.Position, e.Placeholder, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: placeholder %s (object %s): %v",
		ErrUploadFailed, e.Placeholder, e.Name, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is matches ErrUploadFailed in addition to the wrapped cause.
func (e *UploadError) Is(target error) bool {
	return target == ErrUploadFailed
}

// MapHTTPStatus converts upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrSessionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrSessionBusy) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUploadFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
