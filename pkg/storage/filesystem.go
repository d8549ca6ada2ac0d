package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
)

// filesystem stores objects as files under basePath/bucket/path.
type filesystem struct {
	addresses
	basePath  string
	mountPath string
	buckets   []string
	logger    *slog.Logger
}

func newFilesystem(cfg *Config, logger *slog.Logger) (*filesystem, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	mount := "/"
	if u, err := url.Parse(cfg.PublicURL); err == nil && u.Path != "" {
		mount = strings.TrimSuffix(u.Path, "/") + "/"
	}

	buckets := make([]string, 0, len(cfg.Buckets))
	for _, b := range cfg.Buckets {
		buckets = append(buckets, b)
	}

	return &filesystem{
		addresses: addresses{base: strings.TrimSuffix(cfg.PublicURL, "/")},
		basePath:  absPath,
		mountPath: mount,
		buckets:   buckets,
		logger:    logger.With("system", "storage", "backend", "filesystem"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "base_path", f.basePath)

	lc.OnStartup(func() {
		for _, bucket := range append([]string{""}, f.buckets...) {
			if err := os.MkdirAll(filepath.Join(f.basePath, bucket), 0755); err != nil {
				f.logger.Error("storage initialization failed", "bucket", bucket, "error", err)
				return
			}
		}
		f.logger.Info("storage directories initialized", "buckets", len(f.buckets))
	})

	return nil
}

func (f *filesystem) Upload(ctx context.Context, bucket, name string, data []byte, opts UploadOptions) (string, error) {
	key, err := cleanKey(bucket, name)
	if err != nil {
		return "", err
	}

	full := f.fullPath(bucket, key)

	if !opts.Overwrite {
		if _, err := os.Stat(full); err == nil {
			return "", ErrExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmpPath := full + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return "", ErrPermissionDenied
		}
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	return key, nil
}

func (f *filesystem) Delete(ctx context.Context, bucket string, paths ...string) error {
	var errs []error

	for _, p := range paths {
		key, err := cleanKey(bucket, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}

		full := f.fullPath(bucket, key)
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if errors.Is(err, fs.ErrPermission) {
				err = ErrPermissionDenied
			}
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}

		f.pruneEmptyDirs(filepath.Dir(full), filepath.Join(f.basePath, bucket))
	}

	return errors.Join(errs...)
}

// Handler serves stored objects under the public URL path. Directory paths
// are not listed.
func (f *filesystem) Handler() http.Handler {
	files := http.FileServer(http.Dir(f.basePath))

	return http.StripPrefix(f.mountPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}))
}

// MountPath returns the URL path the Handler expects to be mounted at.
func (f *filesystem) MountPath() string {
	return f.mountPath
}

func (f *filesystem) fullPath(bucket, key string) string {
	return filepath.Join(f.basePath, bucket, filepath.FromSlash(key))
}

func (f *filesystem) pruneEmptyDirs(dir, root string) {
	for dir != root && strings.HasPrefix(dir, root) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			f.logger.Warn("failed to read directory for cleanup", "dir", dir, "error", err)
			return
		}
		if len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
			return
		}
		dir = filepath.Dir(dir)
	}
}
