package uploads_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/storage/storagetest"
)

func ptr(s string) *string { return &s }

func TestResolveImage(t *testing.T) {
	current := ptr("https://objects.test/cert-images/badge-old.png")

	tests := []struct {
		name    string
		field   uploads.ImageField
		current *string
		want    *string
		uploads int
	}{
		{
			"new file uploaded",
			uploads.ImageField{PlaceholderRef: "p1"},
			current,
			ptr(storagetest.BaseURL + "/cert-images/badge-aws-p1.png"),
			1,
		},
		{
			"new file wins over clear",
			uploads.ImageField{PlaceholderRef: "p1", Clear: true},
			current,
			ptr(storagetest.BaseURL + "/cert-images/badge-aws-p1.png"),
			1,
		},
		{"clear", uploads.ImageField{Clear: true}, current, nil, 0},
		{"submitted address", uploads.ImageField{URL: ptr("https://cdn.example.com/b.png")}, current, ptr("https://cdn.example.com/b.png"), 0},
		{"empty address clears", uploads.ImageField{URL: ptr("")}, current, nil, 0},
		{"keep current", uploads.ImageField{}, current, current, 0},
		{"unbound placeholder keeps current", uploads.ImageField{PlaceholderRef: "gone"}, current, current, 0},
		{"nothing", uploads.ImageField{}, nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storagetest.New()
			r := uploads.NewReconciler(store, "cert-images", testLogger())

			got, err := r.ResolveImage(context.Background(), tt.field, tt.current, uploads.Bindings{"p1": png("badge.png")}, "badge-aws")
			if err != nil {
				t.Fatalf("ResolveImage() error = %v", err)
			}

			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ResolveImage() = %q, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("ResolveImage() = %v, want %q", got, *tt.want)
			}

			if n := len(store.Uploads()); n != tt.uploads {
				t.Errorf("uploads = %d, want %d", n, tt.uploads)
			}
		})
	}
}

func TestResolveImage_UploadFailure(t *testing.T) {
	store := storagetest.New()
	store.FailUpload("p1", storagetest.ErrInjected)
	r := uploads.NewReconciler(store, "project-images", testLogger())

	_, err := r.ResolveImage(context.Background(), uploads.ImageField{PlaceholderRef: "p1"}, nil, uploads.Bindings{"p1": png("cover.jpg")}, "cover-site")

	var uerr *uploads.UploadError
	if !errors.As(err, &uerr) || uerr.Placeholder != "p1" || uerr.Name != "cover-site-p1.jpg" {
		t.Fatalf("error = %v, want UploadError for p1", err)
	}
	if !errors.Is(err, uploads.ErrUploadFailed) {
		t.Error("error does not match ErrUploadFailed")
	}
}

func TestResolveImage_RejectsNonImage(t *testing.T) {
	store := storagetest.New()
	r := uploads.NewReconciler(store, "project-images", testLogger())
	pdf := uploads.File{Name: "cover.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7")}
	field := uploads.ImageField{PlaceholderRef: "p1"}

	_, err := r.ResolveImage(context.Background(), field, nil, uploads.Bindings{"p1": pdf}, "cover-site")
	if !errors.Is(err, uploads.ErrInvalidFile) {
		t.Fatalf("ResolveImage() error = %v, want ErrInvalidFile", err)
	}
	if uploads.MapHTTPStatus(err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", uploads.MapHTTPStatus(err))
	}
	if len(store.Uploads()) != 0 {
		t.Error("non-image uploaded")
	}

	got, err := r.ResolveFile(context.Background(), field, nil, uploads.Bindings{"p1": pdf}, "credential-site")
	if err != nil || got == nil {
		t.Fatalf("ResolveFile() = %v, %v", got, err)
	}
}
