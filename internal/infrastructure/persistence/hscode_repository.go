package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormHSCodeRepository implements catalog.HSCodeRepository using GORM
type GormHSCodeRepository struct {
	db *gorm.DB
}

// NewGormHSCodeRepository creates a new GORM HS code repository
func NewGormHSCodeRepository(db *gorm.DB) *GormHSCodeRepository {
	return &GormHSCodeRepository{db: db}
}

var _ catalog.HSCodeRepository = (*GormHSCodeRepository)(nil)

// FindByID finds an HS code by its ID
func (r *GormHSCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.HSCode, error) {
	var hsCode catalog.HSCode
	if err := r.db.WithContext(ctx).
		Preload("Season").
		Preload("Heading").
		Where("id = ?", id).
		First(&hsCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hsCode, nil
}

// FindByCode finds an HS code by its unique code
func (r *GormHSCodeRepository) FindByCode(ctx context.Context, code string) (*catalog.HSCode, error) {
	var hsCode catalog.HSCode
	if err := r.db.WithContext(ctx).
		Preload("Season").
		Preload("Heading").
		Where("code = ?", code).
		First(&hsCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hsCode, nil
}

// FindAll finds all HS codes matching the filter
func (r *GormHSCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.HSCode, error) {
	var hsCodes []catalog.HSCode
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.HSCode{}).Preload("Season").Preload("Heading"), filter)
	if err := query.Find(&hsCodes).Error; err != nil {
		return nil, err
	}
	return hsCodes, nil
}

// FindByHeading finds all HS codes under a heading
func (r *GormHSCodeRepository) FindByHeading(ctx context.Context, headingID uuid.UUID, filter shared.Filter) ([]catalog.HSCode, error) {
	var hsCodes []catalog.HSCode
	query := r.db.WithContext(ctx).
		Model(&catalog.HSCode{}).
		Preload("Season").
		Preload("Heading").
		Where("heading_id = ?", headingID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&hsCodes).Error; err != nil {
		return nil, err
	}
	return hsCodes, nil
}

// Save creates or updates an HS code
func (r *GormHSCodeRepository) Save(ctx context.Context, hsCode *catalog.HSCode) error {
	return r.db.WithContext(ctx).Omit("Season", "Heading").Save(hsCode).Error
}

// Delete deletes an HS code
func (r *GormHSCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.HSCode{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts HS codes matching the filter
func (r *GormHSCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.HSCode{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormHSCodeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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
		query = query.Order("code DESC")
	}

	return query
}

func (r *GormHSCodeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"code ILIKE ? OR goods_name_fa ILIKE ? OR goods_name_en ILIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "season_id":
			query = query.Where("season_id = ?", value)
		case "heading_id":
			query = query.Where("heading_id = ?", value)
		case "suq":
			query = query.Where("suq = ?", value)
		}
	}
	return query
}
