package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
)

// HeadingService handles heading-related business operations
type HeadingService struct {
	headingRepo catalog.HeadingRepository
	seasonRepo  catalog.SeasonRepository
}

// NewHeadingService creates a new HeadingService
func NewHeadingService(headingRepo catalog.HeadingRepository, seasonRepo catalog.SeasonRepository) *HeadingService {
	return &HeadingService{
		headingRepo: headingRepo,
		seasonRepo:  seasonRepo,
	}
}

// Create creates a new heading under the season named by code
func (s *HeadingService) Create(ctx context.Context, req CreateHeadingRequest) (*HeadingResponse, error) {
	_, err := s.headingRepo.FindByCode(ctx, req.Code)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Heading with this code already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	season, err := s.seasonRepo.FindByCode(ctx, req.SeasonCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SEASON_NOT_FOUND", "Season with this code does not exist")
		}
		return nil, err
	}

	heading, err := catalog.NewHeading(req.Code, season.ID, req.Description, req.HeadingNotes)
	if err != nil {
		return nil, err
	}

	if err := s.headingRepo.Save(ctx, heading); err != nil {
		return nil, err
	}

	heading.Season = season
	resp := ToHeadingResponse(heading)
	return &resp, nil
}

// GetByID retrieves a heading by ID
func (s *HeadingService) GetByID(ctx context.Context, id uuid.UUID) (*HeadingResponse, error) {
	heading, err := s.headingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToHeadingResponse(heading)
	return &resp, nil
}

// List retrieves headings with pagination
func (s *HeadingService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[HeadingResponse], error) {
	f := toSharedFilter(filter)

	headings, err := s.headingRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.headingRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]HeadingResponse, len(headings))
	for i := range headings {
		items[i] = ToHeadingResponse(&headings[i])
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a heading's season link and descriptive fields
func (s *HeadingService) Update(ctx context.Context, id uuid.UUID, req UpdateHeadingRequest) (*HeadingResponse, error) {
	heading, err := s.headingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seasonID := heading.SeasonID
	if req.SeasonCode != nil {
		season, err := s.seasonRepo.FindByCode(ctx, *req.SeasonCode)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("SEASON_NOT_FOUND", "Season with this code does not exist")
			}
			return nil, err
		}
		seasonID = season.ID
	}

	description := stringValue(heading.Description)
	if req.Description != nil {
		description = *req.Description
	}
	notes := stringValue(heading.HeadingNotes)
	if req.HeadingNotes != nil {
		notes = *req.HeadingNotes
	}
	heading.Update(seasonID, description, notes)
	heading.Season = nil

	if err := s.headingRepo.Save(ctx, heading); err != nil {
		return nil, err
	}

	resp := ToHeadingResponse(heading)
	return &resp, nil
}

// Delete deletes a heading; HS codes that referenced it keep running
// with an empty heading link
func (s *HeadingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.headingRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.headingRepo.Delete(ctx, id)
}
