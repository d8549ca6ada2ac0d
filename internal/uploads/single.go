package uploads

import (
	"context"
	"fmt"

	"github.com/JaimeStill/portfolio-admin/pkg/storage"
)

// ImageField is the submitted state of a single-image field such as a cover
// or badge.
type ImageField struct {
	// PlaceholderRef names a newly selected file in the edit session.
	PlaceholderRef string `json:"placeholder_ref,omitempty"`
	// URL is an address to keep, typically the one the form was loaded with.
	URL *string `json:"url,omitempty"`
	// Clear removes the image.
	Clear bool `json:"clear,omitempty"`
}

// ResolveImage settles a single-image field. A bound placeholder is uploaded
// as {hint}-{placeholder}.{ext}; otherwise a clear request yields nil, then
// the submitted address wins, then current is kept. A bound file that is not
// an image fails with ErrInvalidFile.
func (r *Reconciler) ResolveImage(ctx context.Context, field ImageField, current *string, images Source, hint string) (*string, error) {
	return r.resolveField(ctx, field, current, images, hint, IsImage)
}

// ResolveFile settles a single-file field the way ResolveImage does, for any
// staged file type. Callers validate the file's contents beforehand.
func (r *Reconciler) ResolveFile(ctx context.Context, field ImageField, current *string, images Source, hint string) (*string, error) {
	return r.resolveField(ctx, field, current, images, hint, Accepted)
}

// Pending reports whether the field selects a file bound in images.
func (f ImageField) Pending(images Source) bool {
	if f.PlaceholderRef == "" || images == nil {
		return false
	}
	_, ok := images.Lookup(f.PlaceholderRef)
	return ok
}

func (r *Reconciler) resolveField(ctx context.Context, field ImageField, current *string, images Source, hint string, accept func(string) bool) (*string, error) {
	if field.Pending(images) {
		file, _ := images.Lookup(field.PlaceholderRef)
		name := ObjectName(hint, field.PlaceholderRef, file.Name)

		if !accept(file.ContentType) {
			return nil, &UploadError{
				Placeholder: field.PlaceholderRef,
				Name:        name,
				Err:         fmt.Errorf("%w: %s not allowed here", ErrInvalidFile, file.ContentType),
			}
		}

		address, err := r.Put(ctx, name, file)
		if err != nil {
			return nil, &UploadError{Placeholder: field.PlaceholderRef, Name: name, Err: err}
		}
		return &address, nil
	}

	if field.Clear {
		return nil, nil
	}

	if field.URL != nil {
		if *field.URL == "" {
			return nil, nil
		}
		address := *field.URL
		return &address, nil
	}

	return current, nil
}

// Put uploads file as name, replacing any object of the same name, and
// returns its public address.
func (r *Reconciler) Put(ctx context.Context, name string, file File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stored, err := r.store.Upload(ctx, r.bucket, name, file.Data, storage.UploadOptions{
		ContentType: file.ContentType,
		Overwrite:   true,
	})
	if err != nil {
		r.logger.Error("object upload failed", "object", name, "error", err)
		return "", err
	}

	return r.store.PublicURL(r.bucket, stored), nil
}
