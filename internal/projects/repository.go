package projects

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
	table      repository.Table[Project]
	images     *uploads.Reconciler
	categories categories.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a project system. Body and cover images are uploaded through
// images; category references are checked against categories.
func New(
	table repository.Table[Project],
	images *uploads.Reconciler,
	categories categories.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		table:      table,
		images:     images,
		categories: categories,
		logger:     logger.With("system", "projects"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Project], error) {
	page.Normalize(r.pagination)

	result, err := r.table.List(ctx, page, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Project, error) {
	p, err := r.table.Find(ctx, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd Command, images uploads.Source) (*Project, error) {
	record, _, err := r.prepare(ctx, cmd, nil, images)
	if err != nil {
		return nil, err
	}

	p, err := r.table.Insert(ctx, record)
	if err != nil {
		return nil, r.mapError(err)
	}

	r.logger.Info("project created", "id", p.ID, "slug", p.Slug)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command, images uploads.Source) (*Project, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	record, released, err := r.prepare(ctx, cmd, existing, images)
	if err != nil {
		return nil, err
	}

	p, err := r.table.Replace(ctx, id, record)
	if err != nil {
		return nil, r.mapError(err)
	}

	if len(released) > 0 {
		r.images.Cleanup(ctx, nil, released...)
	}

	r.logger.Info("project updated", "id", p.ID, "slug", p.Slug)
	return &p, nil
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
		Warnings: r.images.Cleanup(ctx, nil, existing.OwnedObjects...),
	}

	r.logger.Info("project deleted", "id", id, "warnings", len(result.Warnings))
	return result, nil
}

// prepare validates cmd and resolves its pending images into the record to
// write. current is the stored project on update. It also returns the owned
// objects the record no longer references.
func (r *repo) prepare(ctx context.Context, cmd Command, current *Project, images uploads.Source) (Project, []string, error) {
	if err := cmd.normalize(); err != nil {
		return Project{}, nil, err
	}

	if err := r.categories.Check(ctx, categories.ScopeProjects, cmd.CategoryID); err != nil {
		if errors.Is(err, categories.ErrNotFound) || errors.Is(err, categories.ErrWrongScope) {
			return Project{}, nil, fmt.Errorf("%w: category: %v", ErrValidation, err)
		}
		return Project{}, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	record := cmd.record()
	hint := cmd.nameHint()

	body, err := r.images.Reconcile(ctx, cmd.Content, images, hint)
	if err != nil {
		return Project{}, nil, err
	}
	record.Content = body
	uploaded := uploads.Uploaded(cmd.Content, body)

	var cover *string
	var owned []string
	if current != nil {
		cover, owned = current.CoverImageURL, current.OwnedObjects
	}
	if record.CoverImageURL, err = r.images.ResolveImage(ctx, cmd.Cover, cover, images, "cover-"+hint); err != nil {
		return Project{}, nil, err
	}
	if cmd.Cover.Pending(images) && record.CoverImageURL != nil {
		uploaded = append(uploaded, *record.CoverImageURL)
	}

	keep, released := uploads.Claim(owned, uploaded, record.images())
	record.OwnedObjects = keep

	return record, released, nil
}

func (r *repo) mapError(err error) error {
	mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
	if mapped == ErrNotFound || mapped == ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
