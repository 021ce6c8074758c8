package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
)

// OrderGood is a single goods line on a registered order
type OrderGood struct {
	shared.BaseEntity
	PublicToken uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Description string          `gorm:"type:varchar(255);not null"`
	HSCodeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	HSCode      *catalog.HSCode `gorm:"foreignKey:HSCodeID;constraint:OnDelete:CASCADE"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:1"`
	Origin      string          `gorm:"type:varchar(55)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(40,20);not null;default:0"`
	Unit        string          `gorm:"type:varchar(55);not null;default:'U'"`
	NWKg        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1"`
	GWKg        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderGood) TableName() string {
	return "order_goods"
}

// NewOrderGood creates a goods line for an order
func NewOrderGood(hsCodeID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*OrderGood, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Goods description cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &OrderGood{
		BaseEntity:  shared.NewBaseEntity(),
		PublicToken: uuid.New(),
		HSCodeID:    hsCodeID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Unit:        "U",
	}, nil
}

// LineTotal returns quantity times unit price
func (g *OrderGood) LineTotal() decimal.Decimal {
	return g.Quantity.Mul(g.UnitPrice)
}
