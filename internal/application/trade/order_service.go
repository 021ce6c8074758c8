package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/trade"
)

// OrderService handles registered order business operations
type OrderService struct {
	orderRepo  trade.RegisteredOrderRepository
	hsCodeRepo catalog.HSCodeRepository
	userRepo   identity.UserRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.RegisteredOrderRepository,
	hsCodeRepo catalog.HSCodeRepository,
	userRepo identity.UserRepository,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		hsCodeRepo: hsCodeRepo,
		userRepo:   userRepo,
	}
}

// Create registers a new order with its goods lines for the given user
func (s *OrderService) Create(ctx context.Context, user *identity.User, req CreateOrderRequest) (*OrderResponse, error) {
	exists, err := s.orderRepo.ExistsByUserAndNumber(ctx, user.ID, req.OrderNumber, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "You have already registered an order with this number")
	}

	goods, err := s.buildGoods(ctx, req.Goods)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewRegisteredOrder(user.ID, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	order.FreightPrice = req.FreightPrice
	order.CurrencyType = req.CurrencyType
	order.SellerCountry = req.SellerCountry
	order.Date = req.Date
	order.ExpireDate = req.ExpireDate
	order.TermsOfDelivery = req.TermsOfDelivery
	order.TermsOfPayment = req.TermsOfPayment
	order.PartialShipment = req.PartialShipment
	order.MeansOfTransport = req.MeansOfTransport
	order.CountryOfOrigin = req.CountryOfOrigin
	order.Standard = req.Standard
	order.ReplaceGoods(goods)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, order, user.Username)
}

// List returns the orders visible to the user, newest first.
// Administrators see every order, other users only their own.
func (s *OrderService) List(ctx context.Context, user *identity.User) ([]OrderResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0 // unpaged

	var (
		orders []trade.RegisteredOrder
		err    error
	)
	if user.CanAdminister() {
		orders, err = s.orderRepo.FindAll(ctx, filter)
	} else {
		orders, err = s.orderRepo.FindByUser(ctx, user.ID, filter)
	}
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, orders)
}

// GetByToken returns a single order. Non-admin callers can only see
// their own orders; anything else reads as not found.
func (s *OrderService) GetByToken(ctx context.Context, user *identity.User, token uuid.UUID) (*OrderResponse, error) {
	order, err := s.findVisible(ctx, user, token)
	if err != nil {
		return nil, err
	}

	username, err := s.ownerLabel(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, username)
}

// Update applies a partial update to an order and recomputes the
// derived totals. A goods list in the request replaces the stored
// goods entirely.
func (s *OrderService) Update(ctx context.Context, user *identity.User, token uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.findVisible(ctx, user, token)
	if err != nil {
		return nil, err
	}

	if req.OrderNumber != nil && *req.OrderNumber != order.OrderNumber {
		exists, err := s.orderRepo.ExistsByUserAndNumber(ctx, order.UserID, *req.OrderNumber, &order.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "You have already registered an order with this number")
		}
		order.OrderNumber = *req.OrderNumber
	}
	if req.FreightPrice != nil {
		order.FreightPrice = *req.FreightPrice
	}
	if req.CurrencyType != nil {
		order.CurrencyType = *req.CurrencyType
	}
	if req.SellerCountry != nil {
		order.SellerCountry = *req.SellerCountry
	}
	if req.Date != nil {
		order.Date = *req.Date
	}
	if req.ExpireDate != nil {
		order.ExpireDate = *req.ExpireDate
	}
	if req.TermsOfDelivery != nil {
		order.TermsOfDelivery = *req.TermsOfDelivery
	}
	if req.TermsOfPayment != nil {
		order.TermsOfPayment = *req.TermsOfPayment
	}
	if req.PartialShipment != nil {
		order.PartialShipment = *req.PartialShipment
	}
	if req.MeansOfTransport != nil {
		order.MeansOfTransport = *req.MeansOfTransport
	}
	if req.CountryOfOrigin != nil {
		order.CountryOfOrigin = *req.CountryOfOrigin
	}
	if req.Standard != nil {
		order.Standard = *req.Standard
	}

	if req.Goods != nil {
		goods, err := s.buildGoods(ctx, *req.Goods)
		if err != nil {
			return nil, err
		}
		order.ReplaceGoods(goods)
		if err := s.orderRepo.ReplaceGoods(ctx, order); err != nil {
			return nil, err
		}
	} else {
		order.RecalculateTotals()
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	username, err := s.ownerLabel(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, username)
}

// Delete removes an order and its goods
func (s *OrderService) Delete(ctx context.Context, user *identity.User, token uuid.UUID) error {
	order, err := s.findVisible(ctx, user, token)
	if err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, order.ID)
}

// SetVerified flips the marketplace visibility flag of an order.
// Authorization is enforced by the caller.
func (s *OrderService) SetVerified(ctx context.Context, token uuid.UUID, verified bool) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}

	order.SetVerified(verified)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	username, err := s.ownerLabel(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, username)
}

// Marketplace lists verified orders for anonymous browsing
func (s *OrderService) Marketplace(ctx context.Context, query MarketplaceQuery) (*shared.Paginated[OrderResponse], error) {
	filter := toMarketplaceFilter(query)

	orders, total, err := s.orderRepo.FindVerified(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.toResponses(ctx, orders)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MarketplaceDetail returns one verified order for anonymous viewing
func (s *OrderService) MarketplaceDetail(ctx context.Context, token uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !order.Verified {
		return nil, shared.ErrNotFound
	}

	username, err := s.ownerLabel(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order, username)
}

// findVisible resolves an order the user is allowed to touch
func (s *OrderService) findVisible(ctx context.Context, user *identity.User, token uuid.UUID) (*trade.RegisteredOrder, error) {
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.CanAdminister() && !order.IsOwnedBy(user.ID) {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// buildGoods validates goods lines and resolves their HS code links
func (s *OrderService) buildGoods(ctx context.Context, reqs []OrderGoodRequest) ([]trade.OrderGood, error) {
	goods := make([]trade.OrderGood, 0, len(reqs))
	for _, item := range reqs {
		if _, err := s.hsCodeRepo.FindByID(ctx, item.HSCodeID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("HS_CODE_NOT_FOUND", fmt.Sprintf("HS code '%s' does not exist", item.HSCodeID))
			}
			return nil, err
		}

		good, err := trade.NewOrderGood(item.HSCodeID, item.Description, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, err
		}
		good.Origin = item.Origin
		if item.Unit != "" {
			good.Unit = item.Unit
		}
		good.NWKg = item.NWKg
		good.GWKg = item.GWKg
		goods = append(goods, *good)
	}
	return goods, nil
}

// ownerLabel returns the public label for an order owner
func (s *OrderService) ownerLabel(ctx context.Context, userID uuid.UUID) (string, error) {
	owner, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Sprintf("user-%s", userID), nil
		}
		return "", err
	}
	if owner.Username != "" {
		return owner.Username, nil
	}
	return fmt.Sprintf("user-%s", userID), nil
}

func (s *OrderService) toResponse(ctx context.Context, order *trade.RegisteredOrder, username string) (*OrderResponse, error) {
	codes, err := s.hsCodeLabels(ctx, []trade.RegisteredOrder{*order})
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order, username, codes)
	return &resp, nil
}

func (s *OrderService) toResponses(ctx context.Context, orders []trade.RegisteredOrder) ([]OrderResponse, error) {
	codes, err := s.hsCodeLabels(ctx, orders)
	if err != nil {
		return nil, err
	}

	labels := make(map[uuid.UUID]string)
	items := make([]OrderResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		label, ok := labels[o.UserID]
		if !ok {
			var err error
			label, err = s.ownerLabel(ctx, o.UserID)
			if err != nil {
				return nil, err
			}
			labels[o.UserID] = label
		}
		items[i] = ToOrderResponse(o, label, codes)
	}
	return items, nil
}

// hsCodeLabels resolves the display code for every goods line once
func (s *OrderService) hsCodeLabels(ctx context.Context, orders []trade.RegisteredOrder) (map[uuid.UUID]string, error) {
	codes := make(map[uuid.UUID]string)
	for i := range orders {
		for j := range orders[i].Goods {
			id := orders[i].Goods[j].HSCodeID
			if _, ok := codes[id]; ok {
				continue
			}
			hsCode, err := s.hsCodeRepo.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					codes[id] = ""
					continue
				}
				return nil, err
			}
			codes[id] = hsCode.Code
		}
	}
	return codes, nil
}

// toMarketplaceFilter maps query params onto the repository filter
func toMarketplaceFilter(query MarketplaceQuery) trade.MarketplaceFilter {
	filter := trade.MarketplaceFilter{
		Query:            query.Q,
		SellerCountry:    query.SellerCountry,
		CurrencyType:     query.CurrencyType,
		TermsOfDelivery:  query.TermsOfDelivery,
		TermsOfPayment:   query.TermsOfPayment,
		MeansOfTransport: query.MeansOfTransport,
		Standard:         query.Standard,
		CountryOfOrigin:  query.CountryOfOrigin,
		PartialShipment:  query.PartialShipment,
		Page:             query.Page,
		PageSize:         query.PageSize,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if query.TotalValueMin != nil {
		min := decimal.NewFromFloat(*query.TotalValueMin)
		filter.TotalValueMin = &min
	}
	if query.TotalValueMax != nil {
		max := decimal.NewFromFloat(*query.TotalValueMax)
		filter.TotalValueMax = &max
	}
	filter.HSCodes = splitCodes(query.HSCode)
	return filter
}

// splitCodes splits a comma separated code list, dropping blanks
func splitCodes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
