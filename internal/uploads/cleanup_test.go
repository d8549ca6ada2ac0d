package uploads_test

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/storage/storagetest"
)

func TestCleanup(t *testing.T) {
	store := storagetest.New()
	a := store.Put("project-images", "site-a.png", []byte("a"))
	b := store.Put("project-images", "site-b.png", []byte("b"))
	cover := store.Put("project-images", "cover-site-c.png", []byte("c"))
	other := store.Put("doc-images", "guide-d.png", []byte("d"))

	tree := mustParse(t, `{"type":"doc","content":[
		{"type":"image","attrs":{"src":"`+a+`"}},
		{"type":"image","attrs":{"src":"`+b+`"}},
		{"type":"image","attrs":{"src":"`+a+`"}},
		{"type":"image","attrs":{"src":"https://cdn.example.com/external.png"}},
		{"type":"image","attrs":{"data-temp-id":"pending"}}
	]}`)

	r := uploads.NewReconciler(store, "project-images", testLogger())
	warnings := r.Cleanup(context.Background(), tree, cover, "", other)

	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}

	deleted := store.Deleted()
	sort.Strings(deleted)
	want := []string{"project-images/cover-site-c.png", "project-images/site-a.png", "project-images/site-b.png"}
	if !reflect.DeepEqual(deleted, want) {
		t.Errorf("deleted = %v, want %v", deleted, want)
	}
	if !store.Has("doc-images", "guide-d.png") {
		t.Error("object from another bucket was removed")
	}
}

func TestCleanup_FailureBecomesWarning(t *testing.T) {
	store := storagetest.New()
	address := store.Put("doc-images", "guide-a.png", []byte("a"))
	store.FailDelete(storagetest.ErrInjected)

	r := uploads.NewReconciler(store, "doc-images", testLogger())
	warnings := r.Cleanup(context.Background(), nil, address)

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
}

func TestCleanup_Nothing(t *testing.T) {
	store := storagetest.New()
	r := uploads.NewReconciler(store, "doc-images", testLogger())

	if w := r.Cleanup(context.Background(), nil); w != nil {
		t.Errorf("warnings = %v", w)
	}
	if len(store.Deleted()) != 0 {
		t.Error("Delete called with nothing to remove")
	}
}

func TestOrphans(t *testing.T) {
	before := []string{"a", "b", "", "c"}
	after := []string{"b", "d"}

	got := uploads.Orphans(before, after)
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Orphans() = %v", got)
	}
}

func TestClaim(t *testing.T) {
	tests := []struct {
		name         string
		owned        []string
		uploaded     []string
		referenced   []string
		wantKeep     []string
		wantReleased []string
	}{
		{"new uploads", nil, []string{"a"}, []string{"a", "borrowed"}, []string{"a"}, nil},
		{"owned still referenced", []string{"a"}, nil, []string{"a"}, []string{"a"}, nil},
		{"owned dropped", []string{"a", "b"}, []string{"c"}, []string{"b", "c"}, []string{"b", "c"}, []string{"a"}},
		{"borrowed never claimed", nil, nil, []string{"borrowed"}, nil, nil},
		{"duplicates", []string{"a", "a", ""}, []string{"a"}, []string{"a"}, []string{"a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, released := uploads.Claim(tt.owned, tt.uploaded, tt.referenced)
			if !reflect.DeepEqual(keep, tt.wantKeep) {
				t.Errorf("keep = %v, want %v", keep, tt.wantKeep)
			}
			if !reflect.DeepEqual(released, tt.wantReleased) {
				t.Errorf("released = %v, want %v", released, tt.wantReleased)
			}
		})
	}
}

func TestUploaded(t *testing.T) {
	before := mustParse(t, `{"type":"doc","content":[
		{"type":"image","attrs":{"src":"https://objects.test/project-images/kept.png"}},
		{"type":"image","attrs":{"data-temp-id":"p1"}}
	]}`)
	after := mustParse(t, `{"type":"doc","content":[
		{"type":"image","attrs":{"src":"https://objects.test/project-images/kept.png"}},
		{"type":"image","attrs":{"src":"https://objects.test/project-images/site-p1.png"}}
	]}`)

	got := uploads.Uploaded(before, after)
	if !reflect.DeepEqual(got, []string{"https://objects.test/project-images/site-p1.png"}) {
		t.Errorf("Uploaded() = %v", got)
	}
}
