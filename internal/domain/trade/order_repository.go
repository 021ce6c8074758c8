package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
)

// MarketplaceFilter carries the query options of the public marketplace
// listing. Zero values mean the clause is not applied.
type MarketplaceFilter struct {
	Query            string
	TotalValueMin    *decimal.Decimal
	TotalValueMax    *decimal.Decimal
	SellerCountry    string
	CurrencyType     string
	TermsOfDelivery  string
	TermsOfPayment   string
	MeansOfTransport string
	Standard         string
	CountryOfOrigin  string
	PartialShipment  *bool
	HSCodes          []string
	Page             int
	PageSize         int
}

// RegisteredOrderRepository defines the interface for order persistence
type RegisteredOrderRepository interface {
	// FindByID finds an order by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*RegisteredOrder, error)

	// FindByPublicToken finds an order by its public token
	FindByPublicToken(ctx context.Context, token uuid.UUID) (*RegisteredOrder, error)

	// FindAll finds orders for administrative listings
	FindAll(ctx context.Context, filter shared.Filter) ([]RegisteredOrder, error)

	// FindByUser finds all orders belonging to a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]RegisteredOrder, error)

	// CountByUser counts orders belonging to a user
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// FindVerified finds verified orders matching the marketplace filter
	FindVerified(ctx context.Context, filter MarketplaceFilter) ([]RegisteredOrder, int64, error)

	// ExistsByUserAndNumber checks order number uniqueness within a user
	ExistsByUserAndNumber(ctx context.Context, userID uuid.UUID, orderNumber string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates an order together with its goods
	Save(ctx context.Context, order *RegisteredOrder) error

	// ReplaceGoods deletes the stored goods of an order and inserts the given ones
	ReplaceGoods(ctx context.Context, order *RegisteredOrder) error

	// Delete deletes an order and its goods
	Delete(ctx context.Context, id uuid.UUID) error
}
