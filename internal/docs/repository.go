package docs

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/JaimeStill/portfolio-admin/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	sections   repository.Table[Section]
	pages      repository.Table[Page]
	images     *uploads.Reconciler
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the docs system over the section and page tables. Page images
// are uploaded through images.
func New(
	sections repository.Table[Section],
	pages repository.Table[Page],
	images *uploads.Reconciler,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		sections:   sections,
		pages:      pages,
		images:     images,
		logger:     logger.With("system", "docs"),
		pagination: pagination,
	}
}

func (r *repo) ListSections(ctx context.Context) ([]Section, error) {
	items, err := r.sections.All(ctx, nil, bySortOrder...)
	if err != nil {
		return nil, fmt.Errorf("%w: list sections: %v", ErrPersistence, err)
	}
	if items == nil {
		items = []Section{}
	}
	return items, nil
}

func (r *repo) FindSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	s, err := r.sections.Find(ctx, id)
	if err != nil {
		return nil, mapError(err, ErrSectionNotFound)
	}
	return &s, nil
}

func (r *repo) CreateSection(ctx context.Context, cmd SectionCommand) (*Section, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	order, err := r.sectionOrder(ctx, cmd.SortOrder, nil)
	if err != nil {
		return nil, err
	}

	s, err := r.sections.Insert(ctx, Section{
		Name:        cmd.Name,
		Slug:        cmd.Slug,
		Description: cmd.Description,
		SortOrder:   order,
	})
	if err != nil {
		return nil, mapError(err, ErrSectionNotFound)
	}

	r.logger.Info("doc section created", "id", s.ID, "slug", s.Slug, "sort_order", s.SortOrder)
	return &s, nil
}

func (r *repo) UpdateSection(ctx context.Context, id uuid.UUID, cmd SectionCommand) (*Section, error) {
	existing, err := r.FindSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	order, err := r.sectionOrder(ctx, cmd.SortOrder, existing)
	if err != nil {
		return nil, err
	}

	s, err := r.sections.Replace(ctx, id, Section{
		Name:        cmd.Name,
		Slug:        cmd.Slug,
		Description: cmd.Description,
		SortOrder:   order,
	})
	if err != nil {
		return nil, mapError(err, ErrSectionNotFound)
	}

	r.logger.Info("doc section updated", "id", s.ID, "slug", s.Slug)
	return &s, nil
}

// DeleteSection removes a section. Its pages stay and become unsectioned.
func (r *repo) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if err := r.sections.Delete(ctx, id); err != nil {
		return mapError(err, ErrSectionNotFound)
	}

	r.logger.Info("doc section deleted", "id", id)
	return nil
}

func (r *repo) ListPages(ctx context.Context, page pagination.PageRequest, filters PageFilters) (*pagination.PageResult[Page], error) {
	page.Normalize(r.pagination)

	result, err := r.pages.List(ctx, page, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: list pages: %v", ErrPersistence, err)
	}
	return result, nil
}

func (r *repo) FindPage(ctx context.Context, id uuid.UUID) (*Page, error) {
	p, err := r.pages.Find(ctx, id)
	if err != nil {
		return nil, mapError(err, ErrPageNotFound)
	}
	return &p, nil
}

func (r *repo) CreatePage(ctx context.Context, cmd PageCommand, images uploads.Source) (*Page, error) {
	record, _, err := r.preparePage(ctx, cmd, nil, images)
	if err != nil {
		return nil, err
	}

	p, err := r.pages.Insert(ctx, record)
	if err != nil {
		return nil, mapError(err, ErrPageNotFound)
	}

	r.logger.Info("doc page created", "id", p.ID, "slug", p.Slug, "sort_order", p.SortOrder)
	return &p, nil
}

func (r *repo) UpdatePage(ctx context.Context, id uuid.UUID, cmd PageCommand, images uploads.Source) (*Page, error) {
	existing, err := r.FindPage(ctx, id)
	if err != nil {
		return nil, err
	}

	record, released, err := r.preparePage(ctx, cmd, existing, images)
	if err != nil {
		return nil, err
	}

	p, err := r.pages.Replace(ctx, id, record)
	if err != nil {
		return nil, mapError(err, ErrPageNotFound)
	}

	if len(released) > 0 {
		r.images.Cleanup(ctx, nil, released...)
	}

	r.logger.Info("doc page updated", "id", p.ID, "slug", p.Slug)
	return &p, nil
}

func (r *repo) DeletePage(ctx context.Context, id uuid.UUID) (*uploads.DeleteResult, error) {
	existing, err := r.FindPage(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.pages.Delete(ctx, id); err != nil {
		return nil, mapError(err, ErrPageNotFound)
	}

	result := &uploads.DeleteResult{
		Warnings: r.images.Cleanup(ctx, nil, existing.OwnedObjects...),
	}

	r.logger.Info("doc page deleted", "id", id, "warnings", len(result.Warnings))
	return result, nil
}

func (r *repo) Outline(ctx context.Context) (*Outline, error) {
	sections, err := r.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := r.pages.All(ctx, nil, bySortOrder...)
	if err != nil {
		return nil, fmt.Errorf("%w: list pages: %v", ErrPersistence, err)
	}
	slices.SortStableFunc(pages, func(a, b Page) int { return cmp.Compare(a.SortOrder, b.SortOrder) })

	grouped := make(map[uuid.UUID][]PageSummary, len(sections))
	outline := &Outline{
		Sections:    make([]OutlineSection, 0, len(sections)),
		Unsectioned: []PageSummary{},
	}

	for _, p := range pages {
		if p.SectionID == nil {
			outline.Unsectioned = append(outline.Unsectioned, summarize(p))
			continue
		}
		grouped[*p.SectionID] = append(grouped[*p.SectionID], summarize(p))
	}

	for _, s := range sections {
		entries := grouped[s.ID]
		if entries == nil {
			entries = []PageSummary{}
		}
		outline.Sections = append(outline.Sections, OutlineSection{Section: s, Pages: entries})
	}

	return outline, nil
}

// preparePage validates cmd and reconciles its body. It also returns the
// owned objects the page no longer references.
func (r *repo) preparePage(ctx context.Context, cmd PageCommand, current *Page, images uploads.Source) (Page, []string, error) {
	if err := cmd.normalize(); err != nil {
		return Page{}, nil, err
	}

	if cmd.SectionID != nil {
		if _, err := r.FindSection(ctx, *cmd.SectionID); err != nil {
			if err == ErrSectionNotFound {
				return Page{}, nil, invalid("section does not exist")
			}
			return Page{}, nil, err
		}
	}

	order, err := r.pageOrder(ctx, cmd, current)
	if err != nil {
		return Page{}, nil, err
	}

	body, err := r.images.Reconcile(ctx, cmd.Content, images, cmd.nameHint())
	if err != nil {
		return Page{}, nil, err
	}

	var owned []string
	if current != nil {
		owned = current.OwnedObjects
	}
	keep, released := uploads.Claim(owned, uploads.Uploaded(cmd.Content, body), content.Sources(body))

	return Page{
		SectionID:    cmd.SectionID,
		Title:        cmd.Title,
		Slug:         cmd.Slug,
		Excerpt:      cmd.Excerpt,
		Status:       cmd.Status,
		SortOrder:    order,
		Content:      body,
		OwnedObjects: keep,
	}, released, nil
}

func (r *repo) sectionOrder(ctx context.Context, requested *int, current *Section) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	if current != nil {
		return current.SortOrder, nil
	}

	sections, err := r.sections.All(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: sort order: %v", ErrPersistence, err)
	}

	orders := make([]int, len(sections))
	for i, s := range sections {
		orders[i] = s.SortOrder
	}
	return nextSortOrder(orders), nil
}

// pageOrder keeps an existing page's position while it stays in its section
// and appends it to the end of a section it is created in or moved to.
func (r *repo) pageOrder(ctx context.Context, cmd PageCommand, current *Page) (int, error) {
	if cmd.SortOrder != nil {
		return *cmd.SortOrder, nil
	}
	if current != nil && sameSection(current.SectionID, cmd.SectionID) {
		return current.SortOrder, nil
	}

	filters := PageFilters{SectionID: cmd.SectionID, Unsectioned: cmd.SectionID == nil}
	pages, err := r.pages.All(ctx, filters)
	if err != nil {
		return 0, fmt.Errorf("%w: sort order: %v", ErrPersistence, err)
	}

	var orders []int
	for _, p := range pages {
		if filters.Matches(p) && (current == nil || p.ID != current.ID) {
			orders = append(orders, p.SortOrder)
		}
	}
	return nextSortOrder(orders), nil
}

func sameSection(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func mapError(err, notFound error) error {
	mapped := repository.MapError(err, notFound, ErrDuplicate)
	if mapped == notFound || mapped == ErrDuplicate {
		return mapped
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
