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

// GormHeadingRepository implements catalog.HeadingRepository using GORM
type GormHeadingRepository struct {
	db *gorm.DB
}

// NewGormHeadingRepository creates a new GORM heading repository
func NewGormHeadingRepository(db *gorm.DB) *GormHeadingRepository {
	return &GormHeadingRepository{db: db}
}

var _ catalog.HeadingRepository = (*GormHeadingRepository)(nil)

// FindByID finds a heading by its ID
func (r *GormHeadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Heading, error) {
	var heading catalog.Heading
	if err := r.db.WithContext(ctx).Preload("Season").Where("id = ?", id).First(&heading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &heading, nil
}

// FindByCode finds a heading by its unique code
func (r *GormHeadingRepository) FindByCode(ctx context.Context, code string) (*catalog.Heading, error) {
	var heading catalog.Heading
	if err := r.db.WithContext(ctx).Preload("Season").Where("code = ?", code).First(&heading).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &heading, nil
}

// FindAll finds all headings matching the filter
func (r *GormHeadingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Heading, error) {
	var headings []catalog.Heading
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Heading{}).Preload("Season"), filter)
	if err := query.Find(&headings).Error; err != nil {
		return nil, err
	}
	return headings, nil
}

// FindBySeason finds all headings under a season
func (r *GormHeadingRepository) FindBySeason(ctx context.Context, seasonID uuid.UUID, filter shared.Filter) ([]catalog.Heading, error) {
	var headings []catalog.Heading
	query := r.db.WithContext(ctx).
		Model(&catalog.Heading{}).
		Preload("Season").
		Where("season_id = ?", seasonID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&headings).Error; err != nil {
		return nil, err
	}
	return headings, nil
}

// CodeMap returns all headings keyed by code, for import preloading
func (r *GormHeadingRepository) CodeMap(ctx context.Context) (map[string]*catalog.Heading, error) {
	var headings []catalog.Heading
	if err := r.db.WithContext(ctx).Find(&headings).Error; err != nil {
		return nil, err
	}
	byCode := make(map[string]*catalog.Heading, len(headings))
	for i := range headings {
		byCode[headings[i].Code] = &headings[i]
	}
	return byCode, nil
}

// Save creates or updates a heading
func (r *GormHeadingRepository) Save(ctx context.Context, heading *catalog.Heading) error {
	return r.db.WithContext(ctx).Omit("Season").Save(heading).Error
}

// Delete deletes a heading
func (r *GormHeadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.Heading{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts headings matching the filter
func (r *GormHeadingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Heading{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormHeadingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("code ASC")
	}

	return query
}

func (r *GormHeadingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	if seasonID, ok := filter.Filters["season_id"]; ok {
		query = query.Where("season_id = ?", seasonID)
	}
	return query
}
