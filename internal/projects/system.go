package projects

import (
	"context"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the project operations. Saves resolve the pending images of
// the submitted body and cover from images before the record is written.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Project], error)
	Find(ctx context.Context, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, cmd Command, images uploads.Source) (*Project, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command, images uploads.Source) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) (*uploads.DeleteResult, error)
}
