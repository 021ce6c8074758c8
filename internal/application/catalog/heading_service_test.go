package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/shared"
)

func newHeadingServiceWithMocks() (*HeadingService, *MockHeadingRepository, *MockSeasonRepository) {
	headingRepo := new(MockHeadingRepository)
	seasonRepo := new(MockSeasonRepository)
	return NewHeadingService(headingRepo, seasonRepo), headingRepo, seasonRepo
}

func TestHeadingService_Create_ResolvesSeasonByCode(t *testing.T) {
	service, headingRepo, seasonRepo := newHeadingServiceWithMocks()
	ctx := context.Background()

	season := newTestSeason(t, "1")

	headingRepo.On("FindByCode", ctx, "0101").Return(nil, shared.ErrNotFound)
	seasonRepo.On("FindByCode", ctx, "1").Return(season, nil)
	headingRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Heading")).Return(nil)

	result, err := service.Create(ctx, CreateHeadingRequest{
		Code:        "0101",
		SeasonCode:  "1",
		Description: "Live horses, asses, mules and hinnies",
	})

	require.NoError(t, err)
	assert.Equal(t, "0101", result.Code)
	assert.Equal(t, season.ID, result.SeasonID)
	assert.Equal(t, "1", result.SeasonCode)
	headingRepo.AssertExpectations(t)
	seasonRepo.AssertExpectations(t)
}

func TestHeadingService_Create_SeasonNotFound(t *testing.T) {
	service, headingRepo, seasonRepo := newHeadingServiceWithMocks()
	ctx := context.Background()

	headingRepo.On("FindByCode", ctx, "9901").Return(nil, shared.ErrNotFound)
	seasonRepo.On("FindByCode", ctx, "99").Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, CreateHeadingRequest{Code: "9901", SeasonCode: "99"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SEASON_NOT_FOUND", domainErr.Code)
}

func TestHeadingService_Create_DuplicateCode(t *testing.T) {
	service, headingRepo, _ := newHeadingServiceWithMocks()
	ctx := context.Background()

	season := newTestSeason(t, "1")
	existing, err := catalog.NewHeading("0101", season.ID, "", "")
	require.NoError(t, err)

	headingRepo.On("FindByCode", ctx, "0101").Return(existing, nil)

	_, err = service.Create(ctx, CreateHeadingRequest{Code: "0101", SeasonCode: "1"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestHeadingService_Update_MovesToAnotherSeason(t *testing.T) {
	service, headingRepo, seasonRepo := newHeadingServiceWithMocks()
	ctx := context.Background()

	oldSeason := newTestSeason(t, "1")
	newSeason := newTestSeason(t, "2")
	heading, err := catalog.NewHeading("0101", oldSeason.ID, "desc", "")
	require.NoError(t, err)

	newSeasonCode := "2"
	headingRepo.On("FindByID", ctx, heading.ID).Return(heading, nil)
	seasonRepo.On("FindByCode", ctx, "2").Return(newSeason, nil)
	headingRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Heading")).Return(nil)

	result, err := service.Update(ctx, heading.ID, UpdateHeadingRequest{SeasonCode: &newSeasonCode})

	require.NoError(t, err)
	assert.Equal(t, newSeason.ID, result.SeasonID)
	require.NotNil(t, result.Description)
	assert.Equal(t, "desc", *result.Description)
	headingRepo.AssertExpectations(t)
}

func TestHeadingService_Delete_NotFound(t *testing.T) {
	service, headingRepo, _ := newHeadingServiceWithMocks()
	ctx := context.Background()
	id := uuid.New()

	headingRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	err := service.Delete(ctx, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
