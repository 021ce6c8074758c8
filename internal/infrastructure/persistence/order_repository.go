package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormRegisteredOrderRepository implements trade.RegisteredOrderRepository using GORM
type GormRegisteredOrderRepository struct {
	db *gorm.DB
}

// NewGormRegisteredOrderRepository creates a new GORM registered order repository
func NewGormRegisteredOrderRepository(db *gorm.DB) *GormRegisteredOrderRepository {
	return &GormRegisteredOrderRepository{db: db}
}

var _ trade.RegisteredOrderRepository = (*GormRegisteredOrderRepository)(nil)

// FindByID finds an order by its internal ID
func (r *GormRegisteredOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.RegisteredOrder, error) {
	var order trade.RegisteredOrder
	if err := r.db.WithContext(ctx).Preload("Goods").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByPublicToken finds an order by its public token
func (r *GormRegisteredOrderRepository) FindByPublicToken(ctx context.Context, token uuid.UUID) (*trade.RegisteredOrder, error) {
	var order trade.RegisteredOrder
	if err := r.db.WithContext(ctx).Preload("Goods").Where("public_token = ?", token).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders for administrative listings
func (r *GormRegisteredOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.RegisteredOrder, error) {
	var orders []trade.RegisteredOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.RegisteredOrder{}).Preload("Goods"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByUser finds all orders belonging to a user
func (r *GormRegisteredOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.RegisteredOrder, error) {
	var orders []trade.RegisteredOrder
	query := r.db.WithContext(ctx).
		Model(&trade.RegisteredOrder{}).
		Preload("Goods").
		Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByUser counts orders belonging to a user
func (r *GormRegisteredOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&trade.RegisteredOrder{}).
		Where("user_id = ?", userID)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindVerified finds verified orders matching the marketplace filter
func (r *GormRegisteredOrderRepository) FindVerified(ctx context.Context, filter trade.MarketplaceFilter) ([]trade.RegisteredOrder, int64, error) {
	base := r.applyMarketplaceFilter(
		r.db.WithContext(ctx).Model(&trade.RegisteredOrder{}).Where("verified = ?", true),
		filter,
	)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Preload("Goods").Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var orders []trade.RegisteredOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ExistsByUserAndNumber checks order number uniqueness within a user
func (r *GormRegisteredOrderRepository) ExistsByUserAndNumber(ctx context.Context, userID uuid.UUID, orderNumber string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&trade.RegisteredOrder{}).
		Where("user_id = ? AND order_number = ?", userID, orderNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order together with its goods
func (r *GormRegisteredOrderRepository) Save(ctx context.Context, order *trade.RegisteredOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// ReplaceGoods deletes the stored goods of an order and inserts the given ones
func (r *GormRegisteredOrderRepository) ReplaceGoods(ctx context.Context, order *trade.RegisteredOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.OrderGood{}).Error; err != nil {
			return err
		}
		if len(order.Goods) > 0 {
			if err := tx.Create(&order.Goods).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Goods").Save(order).Error
	})
}

// Delete deletes an order and its goods
func (r *GormRegisteredOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.OrderGood{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&trade.RegisteredOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormRegisteredOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormRegisteredOrderRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ?", searchPattern)
	}
	if verified, ok := filter.Filters["verified"]; ok {
		query = query.Where("verified = ?", verified)
	}
	return query
}

// applyMarketplaceFilter translates the public listing options into SQL.
// Goods and HS code conditions use EXISTS subqueries so the order rows
// stay unique without a DISTINCT over the joined set.
func (r *GormRegisteredOrderRepository) applyMarketplaceFilter(query *gorm.DB, filter trade.MarketplaceFilter) *gorm.DB {
	if tokens := splitQueryTokens(filter.Query); len(tokens) > 0 {
		tokenQuery := r.db.Session(&gorm.Session{NewDB: true})
		for i, token := range tokens {
			pattern := "%" + token + "%"
			clause := r.db.Session(&gorm.Session{NewDB: true}).Where(
				"order_number ILIKE ? OR EXISTS ("+
					"SELECT 1 FROM order_goods og "+
					"JOIN hs_codes h ON h.id = og.hs_code_id "+
					"WHERE og.order_id = registered_orders.id "+
					"AND (og.description ILIKE ? OR h.code ILIKE ?))",
				pattern, pattern, pattern,
			)
			if i == 0 {
				tokenQuery = clause
			} else {
				tokenQuery = tokenQuery.Or(clause)
			}
		}
		query = query.Where(tokenQuery)
	}

	if filter.TotalValueMin != nil {
		query = query.Where("total_value >= ?", *filter.TotalValueMin)
	}
	if filter.TotalValueMax != nil {
		query = query.Where("total_value <= ?", *filter.TotalValueMax)
	}

	contains := map[string]string{
		"seller_country":     filter.SellerCountry,
		"currency_type":      filter.CurrencyType,
		"terms_of_delivery":  filter.TermsOfDelivery,
		"terms_of_payment":   filter.TermsOfPayment,
		"means_of_transport": filter.MeansOfTransport,
		"standard":           filter.Standard,
		"country_of_origin":  filter.CountryOfOrigin,
	}
	for column, value := range contains {
		if value != "" {
			query = query.Where(column+" ILIKE ?", "%"+value+"%")
		}
	}

	if filter.PartialShipment != nil {
		query = query.Where("partial_shipment = ?", *filter.PartialShipment)
	}

	if len(filter.HSCodes) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM order_goods og "+
				"JOIN hs_codes h ON h.id = og.hs_code_id "+
				"WHERE og.order_id = registered_orders.id AND h.code IN ?)",
			filter.HSCodes,
		)
	}

	return query
}

// splitQueryTokens splits a free-text query on ASCII and Arabic commas.
func splitQueryTokens(q string) []string {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	raw := strings.FieldsFunc(q, func(r rune) bool {
		return r == ',' || r == '،'
	})
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
