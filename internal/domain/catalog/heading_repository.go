package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// HeadingRepository defines the interface for heading persistence
type HeadingRepository interface {
	// FindByID finds a heading by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Heading, error)

	// FindByCode finds a heading by its unique code
	FindByCode(ctx context.Context, code string) (*Heading, error)

	// FindAll finds all headings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Heading, error)

	// FindBySeason finds all headings under a season
	FindBySeason(ctx context.Context, seasonID uuid.UUID, filter shared.Filter) ([]Heading, error)

	// CodeMap returns all headings keyed by code, for import preloading
	CodeMap(ctx context.Context) (map[string]*Heading, error)

	// Save creates or updates a heading
	Save(ctx context.Context, heading *Heading) error

	// Delete deletes a heading
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts headings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
