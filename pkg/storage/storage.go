// Package storage provides the durable object store that uploaded images live in.
// Objects are addressed by bucket and path and served from a public address prefix.
// A filesystem backend suits development and single-node deployments; an
// S3-compatible backend serves production.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
)

// Storage errors returned by System implementations.
var (
	// ErrInvalidKey indicates an empty or malformed bucket or object path,
	// including path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrExists indicates an upload without overwrite targeted an existing object.
	ErrExists = errors.New("storage: object already exists")

	// ErrPermissionDenied indicates insufficient permissions to access the object.
	ErrPermissionDenied = errors.New("storage: permission denied")
)

// UploadOptions controls a single upload.
type UploadOptions struct {
	ContentType string
	// Overwrite replaces an existing object of the same name instead of failing.
	Overwrite bool
}

// System defines the object store operations.
type System interface {
	// Upload stores data as bucket/name and returns the stored path.
	Upload(ctx context.Context, bucket, name string, data []byte, opts UploadOptions) (string, error)

	// PublicURL returns the publicly resolvable address of a stored path.
	PublicURL(bucket, path string) string

	// Path is the inverse of PublicURL. It reports false for addresses that do
	// not belong to bucket.
	Path(bucket, address string) (string, bool)

	// Delete removes the given paths. Missing objects are not an error.
	Delete(ctx context.Context, bucket string, paths ...string) error

	// Start registers lifecycle hooks that provision the configured buckets.
	Start(lc *lifecycle.Coordinator) error
}

// Server is implemented by backends that serve their own objects over HTTP.
type Server interface {
	Handler() http.Handler
	MountPath() string
}

// New creates the System selected by cfg.Backend.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendS3:
		s, err := newS3(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFilesystem, "":
		fs, err := newFilesystem(cfg, logger)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// addresses maps stored paths to public URLs and back.
type addresses struct {
	base string
}

func (a addresses) PublicURL(bucket, p string) string {
	return a.base + "/" + bucket + "/" + p
}

func (a addresses) Path(bucket, address string) (string, bool) {
	prefix := a.base + "/" + bucket + "/"
	if !strings.HasPrefix(address, prefix) {
		return "", false
	}
	p := strings.TrimPrefix(address, prefix)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "", false
	}
	return p, true
}

var bucketPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

func validBucket(bucket string) bool {
	return bucketPattern.MatchString(bucket)
}

// cleanKey validates and normalizes an object path.
func cleanKey(bucket, name string) (string, error) {
	if !validBucket(bucket) || name == "" {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if cleaned == "." || strings.HasPrefix(cleaned, "/") || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
