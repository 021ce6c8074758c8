package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/shared"
)

// RegisteredOrder represents a trade order registered by a user.
// Money totals are derived from the order goods and the freight price,
// never accepted from callers.
type RegisteredOrder struct {
	shared.BaseEntity
	PublicToken      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Verified         bool            `gorm:"not null;default:false;index"`
	OrderNumber      string          `gorm:"type:varchar(55);not null;uniqueIndex:idx_order_user_number,priority:2"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_user_number,priority:1"`
	TotalValue       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	FreightPrice     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	SubTotal         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	CurrencyType     string          `gorm:"type:varchar(55)"`
	SellerCountry    string          `gorm:"type:varchar(255)"`
	Date             string          `gorm:"type:varchar(20)"`
	ExpireDate       string          `gorm:"type:varchar(20)"`
	TermsOfDelivery  string          `gorm:"type:varchar(50)"`
	TermsOfPayment   string          `gorm:"type:varchar(50)"`
	PartialShipment  bool            `gorm:"not null;default:false"`
	MeansOfTransport string          `gorm:"type:varchar(50)"`
	CountryOfOrigin  string          `gorm:"type:varchar(555)"`
	Standard         string          `gorm:"type:varchar(50)"`
	TotalGW          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalNW          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalQty         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	Goods            []OrderGood     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (RegisteredOrder) TableName() string {
	return "registered_orders"
}

// NewRegisteredOrder creates a new unverified order for a user
func NewRegisteredOrder(userID uuid.UUID, orderNumber string) (*RegisteredOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 55 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 55 characters")
	}

	return &RegisteredOrder{
		BaseEntity:  shared.NewBaseEntity(),
		PublicToken: uuid.New(),
		UserID:      userID,
		OrderNumber: orderNumber,
	}, nil
}

// RecalculateTotals recomputes the derived money and weight totals
// from the current goods and freight price
func (o *RegisteredOrder) RecalculateTotals() {
	totalValue := decimal.Zero
	totalQty := decimal.Zero
	totalNW := decimal.Zero
	totalGW := decimal.Zero

	for i := range o.Goods {
		g := &o.Goods[i]
		totalValue = totalValue.Add(g.LineTotal())
		totalQty = totalQty.Add(g.Quantity)
		totalNW = totalNW.Add(g.NWKg)
		totalGW = totalGW.Add(g.GWKg)
	}

	o.TotalValue = totalValue
	o.SubTotal = totalValue.Add(o.FreightPrice)
	o.TotalQty = totalQty
	o.TotalNW = totalNW
	o.TotalGW = totalGW
	o.UpdatedAt = time.Now()
}

// ReplaceGoods swaps the full goods list and recomputes totals
func (o *RegisteredOrder) ReplaceGoods(goods []OrderGood) {
	for i := range goods {
		goods[i].OrderID = o.ID
	}
	o.Goods = goods
	o.RecalculateTotals()
}

// SetVerified sets the marketplace visibility flag
func (o *RegisteredOrder) SetVerified(verified bool) {
	o.Verified = verified
	o.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether the order belongs to the given user
func (o *RegisteredOrder) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}
