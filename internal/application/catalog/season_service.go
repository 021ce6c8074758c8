package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
)

// SeasonService handles season-related business operations
type SeasonService struct {
	seasonRepo catalog.SeasonRepository
}

// NewSeasonService creates a new SeasonService
func NewSeasonService(seasonRepo catalog.SeasonRepository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo}
}

// Create creates a new season
func (s *SeasonService) Create(ctx context.Context, req CreateSeasonRequest) (*SeasonResponse, error) {
	_, err := s.seasonRepo.FindByCode(ctx, req.Code)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Season with this code already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	season, err := catalog.NewSeason(req.Code, req.Description, req.SeasonNotes)
	if err != nil {
		return nil, err
	}

	if err := s.seasonRepo.Save(ctx, season); err != nil {
		return nil, err
	}

	resp := ToSeasonResponse(season)
	return &resp, nil
}

// GetByID retrieves a season by ID
func (s *SeasonService) GetByID(ctx context.Context, id uuid.UUID) (*SeasonResponse, error) {
	season, err := s.seasonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToSeasonResponse(season)
	return &resp, nil
}

// List retrieves seasons with pagination
func (s *SeasonService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SeasonResponse], error) {
	f := toSharedFilter(filter)

	seasons, err := s.seasonRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.seasonRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]SeasonResponse, len(seasons))
	for i := range seasons {
		items[i] = ToSeasonResponse(&seasons[i])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a season's descriptive fields
func (s *SeasonService) Update(ctx context.Context, id uuid.UUID, req UpdateSeasonRequest) (*SeasonResponse, error) {
	season, err := s.seasonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	description := stringValue(season.Description)
	if req.Description != nil {
		description = *req.Description
	}
	notes := stringValue(season.SeasonNotes)
	if req.SeasonNotes != nil {
		notes = *req.SeasonNotes
	}
	season.Update(description, notes)

	if err := s.seasonRepo.Save(ctx, season); err != nil {
		return nil, err
	}

	resp := ToSeasonResponse(season)
	return &resp, nil
}

// Delete deletes a season and cascades to its headings and HS codes
func (s *SeasonService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.seasonRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.seasonRepo.Delete(ctx, id)
}

// toSharedFilter converts a list filter into repository filter options
func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	return f
}
