package certifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	table      repository.Table[Certification]
	files      *uploads.Reconciler
	categories categories.System
	logger     *slog.Logger
	pagination pagination.Config
}

func New(
	table repository.Table[Certification],
	files *uploads.Reconciler,
	categories categories.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		table:      table,
		files:      files,
		categories: categories,
		logger:     logger.With("system", "certifications"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Certification], error) {
	page.Normalize(r.pagination)

	result, err := r.table.List(ctx, page, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Certification, error) {
	c, err := r.table.Find(ctx, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd Command, images uploads.Source) (*Certification, error) {
	record, _, err := r.prepare(ctx, cmd, nil, images)
	if err != nil {
		return nil, err
	}

	c, err := r.table.Insert(ctx, record)
	if err != nil {
		return nil, r.mapError(err)
	}

	r.logger.Info("certification created", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command, images uploads.Source) (*Certification, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	record, released, err := r.prepare(ctx, cmd, existing, images)
	if err != nil {
		return nil, err
	}

	c, err := r.table.Replace(ctx, id, record)
	if err != nil {
		return nil, r.mapError(err)
	}

	if len(released) > 0 {
		r.files.Cleanup(ctx, nil, released...)
	}

	r.logger.Info("certification updated", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (*uploads.DeleteResult, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.table.Delete(ctx, id); err != nil {
		return nil, r.mapError(err)
	}

	result := &uploads.DeleteResult{
		Warnings: r.files.Cleanup(ctx, nil, existing.OwnedObjects...),
	}

	r.logger.Info("certification deleted", "id", id, "warnings", len(result.Warnings))
	return result, nil
}

// prepare validates cmd, including any staged credential PDF, before the
// badge and credential file are uploaded. It also returns the owned objects
// the record no longer references.
func (r *repo) prepare(ctx context.Context, cmd Command, current *Certification, images uploads.Source) (Certification, []string, error) {
	if err := cmd.normalize(); err != nil {
		return Certification{}, nil, err
	}

	if err := r.categories.Check(ctx, categories.ScopeCertifications, cmd.CategoryID); err != nil {
		if errors.Is(err, categories.ErrNotFound) || errors.Is(err, categories.ErrWrongScope) {
			return Certification{}, nil, fmt.Errorf("%w: category: %v", ErrValidation, err)
		}
		return Certification{}, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	credential, err := stagedCredential(cmd.CredentialFile, images)
	if err != nil {
		return Certification{}, nil, err
	}

	record := cmd.record()
	hint := cmd.nameHint()

	var badge, file *string
	var pages *int
	var owned []string
	if current != nil {
		badge, file, pages = current.BadgeImageURL, current.CredentialFileURL, current.CredentialPages
		owned = current.OwnedObjects
	}

	var uploaded []string

	if record.BadgeImageURL, err = r.files.ResolveImage(ctx, cmd.Badge, badge, images, "badge-"+hint); err != nil {
		return Certification{}, nil, err
	}
	if cmd.Badge.Pending(images) && record.BadgeImageURL != nil {
		uploaded = append(uploaded, *record.BadgeImageURL)
	}

	if record.CredentialFileURL, err = r.files.ResolveFile(ctx, cmd.CredentialFile, file, images, "credential-"+hint); err != nil {
		return Certification{}, nil, err
	}
	if credential != nil && record.CredentialFileURL != nil {
		uploaded = append(uploaded, *record.CredentialFileURL)
	}

	switch {
	case credential != nil:
		record.CredentialPages = &credential.Pages
	case record.CredentialFileURL != nil && file != nil && *record.CredentialFileURL == *file:
		record.CredentialPages = pages
	}

	keep, released := uploads.Claim(owned, uploaded, record.objects())
	record.OwnedObjects = keep

	return record, released, nil
}

func (r *repo) mapError(err error) error {
	if repository.MapError(err, ErrNotFound, ErrPersistence) == ErrNotFound {
		return ErrNotFound
	}
	if repository.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: category does not exist", ErrValidation)
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
