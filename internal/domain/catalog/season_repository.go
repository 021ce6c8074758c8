package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// SeasonRepository defines the interface for season persistence
type SeasonRepository interface {
	// FindByID finds a season by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Season, error)

	// FindByCode finds a season by its unique code
	FindByCode(ctx context.Context, code string) (*Season, error)

	// FindAll finds all seasons matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Season, error)

	// CodeMap returns all seasons keyed by code, for import preloading
	CodeMap(ctx context.Context) (map[string]*Season, error)

	// Save creates or updates a season
	Save(ctx context.Context, season *Season) error

	// Delete deletes a season
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts seasons matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
