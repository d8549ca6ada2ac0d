// Package uploads holds images selected in the editor until the save that
// references them, and reconciles document trees against the durable object
// store when that save runs.
package uploads

import (
	"sync"

	"github.com/google/uuid"
)

// File is a locally selected image awaiting upload.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Source is the set of bindings available to one reconciliation pass.
type Source interface {
	Lookup(id string) (File, bool)
	Len() int
}

// Registry maps placeholder ids to the files they stand for. It is scoped to
// a single edit session and never touches the network.
type Registry struct {
	mu    sync.RWMutex
	files map[string]File
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{files: make(map[string]File)}
}

// Register stores file under a freshly minted placeholder id and returns the id.
func (r *Registry) Register(file File) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[id] = file
	return id
}

func (r *Registry) Lookup(id string) (File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	return f, ok
}

// Remove drops one binding. Unknown ids are ignored.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.files[id]
	delete(r.files, id)
	return ok
}

// Snapshot copies the current bindings.
func (r *Registry) Snapshot() Bindings {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := make(Bindings, len(r.files))
	for id, f := range r.files {
		b[id] = f
	}
	return b
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.files)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

// Bindings is a fixed Source built from a map, for callers that already hold
// every file in hand.
type Bindings map[string]File

func (b Bindings) Lookup(id string) (File, bool) {
	f, ok := b[id]
	return f, ok
}

func (b Bindings) Len() int {
	return len(b)
}
