package docs

import (
	"context"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the documentation operations.
type System interface {
	ListSections(ctx context.Context) ([]Section, error)
	FindSection(ctx context.Context, id uuid.UUID) (*Section, error)
	CreateSection(ctx context.Context, cmd SectionCommand) (*Section, error)
	UpdateSection(ctx context.Context, id uuid.UUID, cmd SectionCommand) (*Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error

	ListPages(ctx context.Context, page pagination.PageRequest, filters PageFilters) (*pagination.PageResult[Page], error)
	FindPage(ctx context.Context, id uuid.UUID) (*Page, error)
	CreatePage(ctx context.Context, cmd PageCommand, images uploads.Source) (*Page, error)
	UpdatePage(ctx context.Context, id uuid.UUID, cmd PageCommand, images uploads.Source) (*Page, error)
	DeletePage(ctx context.Context, id uuid.UUID) (*uploads.DeleteResult, error)

	Outline(ctx context.Context) (*Outline, error)
}
