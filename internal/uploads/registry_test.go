package uploads_test

import (
	"sync"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
)

func TestRegistry(t *testing.T) {
	reg := uploads.NewRegistry()

	a := reg.Register(png("a.png"))
	b := reg.Register(png("b.png"))

	if a == b || a == "" {
		t.Fatalf("Register() ids = %q, %q", a, b)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}

	f, ok := reg.Lookup(a)
	if !ok || f.Name != "a.png" {
		t.Errorf("Lookup(a) = %+v, %v", f, ok)
	}

	if !reg.Remove(a) {
		t.Error("Remove(a) = false")
	}
	if reg.Remove(a) {
		t.Error("second Remove(a) = true")
	}
	if _, ok := reg.Lookup(a); ok {
		t.Error("Lookup after Remove found the file")
	}

	reg.Clear()
	if reg.Len() != 0 {
		t.Errorf("Len() after Clear = %d", reg.Len())
	}
	if _, ok := reg.Lookup(b); ok {
		t.Error("Lookup after Clear found the file")
	}
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	reg := uploads.NewRegistry()

	var wg sync.WaitGroup
	ids := make([]string, 50)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = reg.Register(png("x.png"))
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if reg.Len() != len(ids) {
		t.Errorf("Len() = %d, want %d", reg.Len(), len(ids))
	}
}
