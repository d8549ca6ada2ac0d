package categories

import (
	"context"

	"github.com/google/uuid"
)

// System defines the category vocabulary operations.
type System interface {
	List(ctx context.Context, filters Filters) ([]Category, error)
	Find(ctx context.Context, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, cmd Command) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Ensure returns the category of scope whose slug matches name, creating it
	// when it does not exist.
	Ensure(ctx context.Context, scope Scope, name string) (*Category, error)

	// Check verifies that id names a category of scope. A nil id passes.
	Check(ctx context.Context, scope Scope, id *uuid.UUID) error
}
