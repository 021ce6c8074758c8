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

// GormSeasonRepository implements catalog.SeasonRepository using GORM
type GormSeasonRepository struct {
	db *gorm.DB
}

// NewGormSeasonRepository creates a new GORM season repository
func NewGormSeasonRepository(db *gorm.DB) *GormSeasonRepository {
	return &GormSeasonRepository{db: db}
}

var _ catalog.SeasonRepository = (*GormSeasonRepository)(nil)

// FindByID finds a season by its ID
func (r *GormSeasonRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Season, error) {
	var season catalog.Season
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// FindByCode finds a season by its unique code
func (r *GormSeasonRepository) FindByCode(ctx context.Context, code string) (*catalog.Season, error) {
	var season catalog.Season
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&season).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// FindAll finds all seasons matching the filter
func (r *GormSeasonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Season, error) {
	var seasons []catalog.Season
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Season{}), filter)
	if err := query.Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// CodeMap returns all seasons keyed by code, for import preloading
func (r *GormSeasonRepository) CodeMap(ctx context.Context) (map[string]*catalog.Season, error) {
	var seasons []catalog.Season
	if err := r.db.WithContext(ctx).Find(&seasons).Error; err != nil {
		return nil, err
	}
	byCode := make(map[string]*catalog.Season, len(seasons))
	for i := range seasons {
		byCode[seasons[i].Code] = &seasons[i]
	}
	return byCode, nil
}

// Save creates or updates a season
func (r *GormSeasonRepository) Save(ctx context.Context, season *catalog.Season) error {
	return r.db.WithContext(ctx).Save(season).Error
}

// Delete deletes a season
func (r *GormSeasonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&catalog.Season{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts seasons matching the filter
func (r *GormSeasonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Season{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSeasonRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormSeasonRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	return query
}
