// Package storagetest provides an in-memory storage.System that records every
// call, for tests of code that uploads or deletes objects.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/JaimeStill/portfolio-admin/pkg/lifecycle"
	"github.com/JaimeStill/portfolio-admin/pkg/storage"
)

// BaseURL is the public address prefix of the memory store.
const BaseURL = "https://objects.test"

// Upload records one Upload call.
type Upload struct {
	Bucket    string
	Name      string
	Data      []byte
	Options   storage.UploadOptions
	Succeeded bool
}

// Memory is a storage.System held in a map keyed by "bucket/path".
type Memory struct {
	mu         sync.Mutex
	objects    map[string][]byte
	uploads    []Upload
	deletes    []string
	failUpload map[string]error
	failDelete error
}

// New creates an empty Memory store.
func New() *Memory {
	return &Memory{
		objects:    make(map[string][]byte),
		failUpload: make(map[string]error),
	}
}

var _ storage.System = (*Memory)(nil)

// FailUpload makes uploads whose object name contains substr fail with err.
func (m *Memory) FailUpload(substr string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failUpload[substr] = err
}

// FailDelete makes every Delete call fail with err.
func (m *Memory) FailDelete(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDelete = err
}

// Uploads returns every Upload call in order, including failed ones.
func (m *Memory) Uploads() []Upload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Upload, len(m.uploads))
	copy(out, m.uploads)
	return out
}

// Deleted returns every "bucket/path" passed to Delete.
func (m *Memory) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deletes))
	copy(out, m.deletes)
	return out
}

// Has reports whether bucket/path is stored.
func (m *Memory) Has(bucket, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[bucket+"/"+path]
	return ok
}

// Put stores an object directly, bypassing call recording.
func (m *Memory) Put(bucket, path string, data []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+path] = data
	return m.PublicURL(bucket, path)
}

func (m *Memory) Upload(ctx context.Context, bucket, name string, data []byte, opts storage.UploadOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := Upload{Bucket: bucket, Name: name, Data: data, Options: opts}

	if err := ctx.Err(); err != nil {
		m.uploads = append(m.uploads, call)
		return "", err
	}

	for substr, err := range m.failUpload {
		if strings.Contains(name, substr) {
			m.uploads = append(m.uploads, call)
			return "", err
		}
	}

	key := bucket + "/" + name
	if _, exists := m.objects[key]; exists && !opts.Overwrite {
		m.uploads = append(m.uploads, call)
		return "", storage.ErrExists
	}

	m.objects[key] = data
	call.Succeeded = true
	m.uploads = append(m.uploads, call)
	return name, nil
}

func (m *Memory) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", BaseURL, bucket, path)
}

func (m *Memory) Path(bucket, address string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", BaseURL, bucket)
	if !strings.HasPrefix(address, prefix) || len(address) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(address, prefix), true
}

func (m *Memory) Delete(ctx context.Context, bucket string, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range paths {
		m.deletes = append(m.deletes, bucket+"/"+p)
	}

	if m.failDelete != nil {
		return m.failDelete
	}

	for _, p := range paths {
		delete(m.objects, bucket+"/"+p)
	}
	return nil
}

func (m *Memory) Start(lc *lifecycle.Coordinator) error {
	return nil
}

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("storagetest: injected failure")
