package certifications

import (
	"context"

	"github.com/JaimeStill/portfolio-admin/internal/uploads"
	"github.com/JaimeStill/portfolio-admin/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the certification operations. Saves resolve the badge and
// credential file from images before the record is written.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Certification], error)
	Find(ctx context.Context, id uuid.UUID) (*Certification, error)
	Create(ctx context.Context, cmd Command, images uploads.Source) (*Certification, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command, images uploads.Source) (*Certification, error)
	Delete(ctx context.Context, id uuid.UUID) (*uploads.DeleteResult, error)
}
