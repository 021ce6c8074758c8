package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/trade"
)

// OrderGoodRequest represents one goods line in a create or update request
type OrderGoodRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	HSCodeID    uuid.UUID       `json:"hs_code_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Origin      string          `json:"origin" binding:"max=55"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit" binding:"max=55"`
	NWKg        decimal.Decimal `json:"nw_kg"`
	GWKg        decimal.Decimal `json:"gw_kg"`
}

// CreateOrderRequest represents a request to register an order.
// Totals are derived server side and never accepted from the caller.
type CreateOrderRequest struct {
	OrderNumber      string             `json:"order_number" binding:"required,max=55"`
	FreightPrice     decimal.Decimal    `json:"freight_price"`
	CurrencyType     string             `json:"currency_type" binding:"max=55"`
	SellerCountry    string             `json:"seller_country" binding:"max=255"`
	Date             string             `json:"date" binding:"max=20"`
	ExpireDate       string             `json:"expire_date" binding:"max=20"`
	TermsOfDelivery  string             `json:"terms_of_delivery" binding:"max=50"`
	TermsOfPayment   string             `json:"terms_of_payment" binding:"max=50"`
	PartialShipment  bool               `json:"partial_shipment"`
	MeansOfTransport string             `json:"means_of_transport" binding:"max=50"`
	CountryOfOrigin  string             `json:"country_of_origin" binding:"max=555"`
	Standard         string             `json:"standard" binding:"max=50"`
	Goods            []OrderGoodRequest `json:"goods" binding:"required"`
}

// UpdateOrderRequest represents a partial update of an order. A nil
// goods list leaves the stored goods untouched; a non-nil list replaces
// them entirely.
type UpdateOrderRequest struct {
	OrderNumber      *string             `json:"order_number" binding:"omitempty,max=55"`
	FreightPrice     *decimal.Decimal    `json:"freight_price"`
	CurrencyType     *string             `json:"currency_type"`
	SellerCountry    *string             `json:"seller_country"`
	Date             *string             `json:"date"`
	ExpireDate       *string             `json:"expire_date"`
	TermsOfDelivery  *string             `json:"terms_of_delivery"`
	TermsOfPayment   *string             `json:"terms_of_payment"`
	PartialShipment  *bool               `json:"partial_shipment"`
	MeansOfTransport *string             `json:"means_of_transport"`
	CountryOfOrigin  *string             `json:"country_of_origin"`
	Standard         *string             `json:"standard"`
	Goods            *[]OrderGoodRequest `json:"goods"`
}

// VerifyOrderRequest flips the marketplace visibility flag
type VerifyOrderRequest struct {
	Verified *bool `json:"verified"`
}

// MarketplaceQuery represents the filters of the public marketplace listing
type MarketplaceQuery struct {
	Q                string   `form:"q"`
	TotalValueMin    *float64 `form:"total_value_min"`
	TotalValueMax    *float64 `form:"total_value_max"`
	SellerCountry    string   `form:"seller_country"`
	CurrencyType     string   `form:"currency_type"`
	TermsOfDelivery  string   `form:"terms_of_delivery"`
	TermsOfPayment   string   `form:"terms_of_payment"`
	MeansOfTransport string   `form:"means_of_transport"`
	Standard         string   `form:"standard"`
	CountryOfOrigin  string   `form:"country_of_origin"`
	PartialShipment  *bool    `form:"partial_shipment"`
	HSCode           string   `form:"hs_code"`
	Page             int      `form:"page" binding:"omitempty,min=1"`
	PageSize         int      `form:"page_size" binding:"omitempty,min=1,max=600"`
}

// OrderGoodResponse represents one goods line in API responses
type OrderGoodResponse struct {
	UUID        uuid.UUID       `json:"uuid"`
	Description string          `json:"description"`
	HSCode      string          `json:"hs_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Origin      string          `json:"origin"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit"`
	NWKg        decimal.Decimal `json:"nw_kg"`
	GWKg        decimal.Decimal `json:"gw_kg"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents a registered order in API responses
type OrderResponse struct {
	UUID             uuid.UUID           `json:"uuid"`
	OrderNumber      string              `json:"order_number"`
	User             string              `json:"user"`
	Verified         bool                `json:"verified"`
	TotalValue       decimal.Decimal     `json:"total_value"`
	FreightPrice     decimal.Decimal     `json:"freight_price"`
	SubTotal         decimal.Decimal     `json:"sub_total"`
	CreatedAt        time.Time           `json:"created_at"`
	CurrencyType     string              `json:"currency_type"`
	SellerCountry    string              `json:"seller_country"`
	Date             string              `json:"date"`
	ExpireDate       string              `json:"expire_date"`
	TermsOfDelivery  string              `json:"terms_of_delivery"`
	TermsOfPayment   string              `json:"terms_of_payment"`
	PartialShipment  bool                `json:"partial_shipment"`
	MeansOfTransport string              `json:"means_of_transport"`
	CountryOfOrigin  string              `json:"country_of_origin"`
	Standard         string              `json:"standard"`
	TotalGW          decimal.Decimal     `json:"total_gw"`
	TotalNW          decimal.Decimal     `json:"total_nw"`
	TotalQty         decimal.Decimal     `json:"total_qty"`
	Goods            []OrderGoodResponse `json:"goods"`
}

// ToOrderResponse converts a domain order to its API shape.
// hsCodes maps goods line HS code IDs to their display code; username
// is the owner's public label.
func ToOrderResponse(o *trade.RegisteredOrder, username string, hsCodes map[uuid.UUID]string) OrderResponse {
	goods := make([]OrderGoodResponse, len(o.Goods))
	for i := range o.Goods {
		g := &o.Goods[i]
		goods[i] = OrderGoodResponse{
			UUID:        g.PublicToken,
			Description: g.Description,
			HSCode:      hsCodes[g.HSCodeID],
			Quantity:    g.Quantity,
			Origin:      g.Origin,
			UnitPrice:   g.UnitPrice,
			Unit:        g.Unit,
			NWKg:        g.NWKg,
			GWKg:        g.GWKg,
			LineTotal:   g.LineTotal(),
		}
	}

	return OrderResponse{
		UUID:             o.PublicToken,
		OrderNumber:      o.OrderNumber,
		User:             username,
		Verified:         o.Verified,
		TotalValue:       o.TotalValue,
		FreightPrice:     o.FreightPrice,
		SubTotal:         o.SubTotal,
		CreatedAt:        o.CreatedAt,
		CurrencyType:     o.CurrencyType,
		SellerCountry:    o.SellerCountry,
		Date:             o.Date,
		ExpireDate:       o.ExpireDate,
		TermsOfDelivery:  o.TermsOfDelivery,
		TermsOfPayment:   o.TermsOfPayment,
		PartialShipment:  o.PartialShipment,
		MeansOfTransport: o.MeansOfTransport,
		CountryOfOrigin:  o.CountryOfOrigin,
		Standard:         o.Standard,
		TotalGW:          o.TotalGW,
		TotalNW:          o.TotalNW,
		TotalQty:         o.TotalQty,
		Goods:            goods,
	}
}
