package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// HSCodeRepository defines the interface for HS code persistence
type HSCodeRepository interface {
	// FindByID finds an HS code by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*HSCode, error)

	// FindByCode finds an HS code by its unique code
	FindByCode(ctx context.Context, code string) (*HSCode, error)

	// FindAll finds all HS codes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]HSCode, error)

	// FindByHeading finds all HS codes under a heading
	FindByHeading(ctx context.Context, headingID uuid.UUID, filter shared.Filter) ([]HSCode, error)

	// Save creates or updates an HS code
	Save(ctx context.Context, hsCode *HSCode) error

	// Delete deletes an HS code
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts HS codes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
