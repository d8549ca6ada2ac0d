package categories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/pkg/query"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	table  repository.Table[Category]
	logger *slog.Logger
}

// New creates a category system persisting through table.
func New(table repository.Table[Category], logger *slog.Logger) System {
	return &repo{
		table:  table,
		logger: logger.With("system", "categories"),
	}
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Category, error) {
	items, err := r.table.All(ctx, filters, query.SortField{Field: "Scope"}, query.SortField{Field: "Name"})
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrPersistence, err)
	}
	if items == nil {
		items = []Category{}
	}
	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := r.table.Find(ctx, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Category, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	c, err := r.table.Insert(ctx, cmd.record())
	if err != nil {
		return nil, r.mapError(err)
	}

	r.logger.Info("category created", "id", c.ID, "scope", c.Scope, "slug", c.Slug)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Category, error) {
	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Scope == "" {
		cmd.Scope = existing.Scope
	}
	if cmd.Scope != existing.Scope {
		return nil, fmt.Errorf("%w: scope cannot change", ErrValidation)
	}
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	c, err := r.table.Replace(ctx, id, cmd.record())
	if err != nil {
		return nil, r.mapError(err)
	}

	r.logger.Info("category updated", "id", c.ID, "slug", c.Slug)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.table.Delete(ctx, id); err != nil {
		return r.mapError(err)
	}

	r.logger.Info("category deleted", "id", id)
	return nil
}

func (r *repo) Ensure(ctx context.Context, scope Scope, name string) (*Category, error) {
	cmd := Command{Scope: scope, Name: name}
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	if c, err := r.bySlug(ctx, scope, cmd.Slug); err != nil || c != nil {
		return c, err
	}

	c, err := r.Create(ctx, cmd)
	if errors.Is(err, ErrDuplicate) {
		// created concurrently since the lookup
		if existing, lookupErr := r.bySlug(ctx, scope, cmd.Slug); lookupErr == nil && existing != nil {
			return existing, nil
		}
	}
	return c, err
}

func (r *repo) Check(ctx context.Context, scope Scope, id *uuid.UUID) error {
	if id == nil {
		return nil
	}

	c, err := r.Find(ctx, *id)
	if err != nil {
		return err
	}
	if c.Scope != scope {
		return fmt.Errorf("%w: %s is a %s category", ErrWrongScope, c.Name, c.Scope)
	}
	return nil
}

func (r *repo) bySlug(ctx context.Context, scope Scope, slug string) (*Category, error) {
	filters := Filters{Scope: &scope, Slug: &slug}

	items, err := r.table.All(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup: %v", ErrPersistence, err)
	}
	for _, c := range items {
		if filters.Matches(c) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *repo) mapError(err error) error {
	mapped := repository.MapError(err, ErrNotFound, ErrDuplicate)
	if mapped == ErrNotFound || mapped == ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
