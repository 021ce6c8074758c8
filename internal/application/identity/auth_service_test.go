package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/infrastructure/auth"
	"github.com/tradegate/backend/internal/infrastructure/config"
)

// =============================================================================
// Mock Repository
// =============================================================================

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

// =============================================================================
// Test Fixtures
// =============================================================================

func newAuthServiceWithMocks() (*AuthService, *MockUserRepository, *auth.JWTService) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "tradegate-test",
	})
	return NewAuthService(userRepo, jwtService, zap.NewNop()), userRepo, jwtService
}

func newStoredUser(t *testing.T, username, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password)
	require.NoError(t, err)
	return user
}

// =============================================================================
// AuthService Tests
// =============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	email := "Trader@Example.com"
	userRepo.On("ExistsByUsername", ctx, "trader01").Return(false, nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	result, err := service.Register(ctx, RegisterRequest{
		Username: "trader01",
		Password: "secret-password",
		Email:    &email,
	})

	require.NoError(t, err)
	assert.Equal(t, "trader01", result.User.Username)
	assert.Equal(t, "user", result.User.Role)
	require.NotNil(t, result.User.Email)
	assert.Equal(t, "trader@example.com", *result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	userRepo.On("ExistsByUsername", ctx, "trader01").Return(true, nil)

	_, err := service.Register(ctx, RegisterRequest{Username: "trader01", Password: "secret-password"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, userRepo, jwtService := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	userRepo.On("FindByUsername", ctx, "trader01").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.Login(ctx, LoginRequest{Username: "trader01", Password: "secret-password"})

	require.NoError(t, err)
	assert.Equal(t, "trader01", result.User.Username)
	require.NotNil(t, result.User.LastLoginAt)

	claims, err := jwtService.ValidateAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "trader01", claims.Username)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

	_, err := service.Login(ctx, LoginRequest{Username: "ghost", Password: "secret-password"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	userRepo.On("FindByUsername", ctx, "trader01").Return(user, nil)

	_, err := service.Login(ctx, LoginRequest{Username: "trader01", Password: "wrong-password"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	user.IsActive = false
	userRepo.On("FindByUsername", ctx, "trader01").Return(user, nil)

	_, err := service.Login(ctx, LoginRequest{Username: "trader01", Password: "secret-password"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	service, userRepo, jwtService := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	tokens, err := service.Refresh(ctx, RefreshRequest{Refresh: pair.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	service, _, jwtService := newAuthServiceWithMocks()
	ctx := context.Background()

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "trader01",
		Role:     "user",
	})
	require.NoError(t, err)

	_, err = service.Refresh(ctx, RefreshRequest{Refresh: pair.AccessToken})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	expiredJWT := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: -time.Minute,
		Issuer:                 "tradegate-test",
	})
	service := NewAuthService(userRepo, expiredJWT, zap.NewNop())
	ctx := context.Background()

	pair, err := expiredJWT.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "trader01",
		Role:     "user",
	})
	require.NoError(t, err)

	_, err = service.Refresh(ctx, RefreshRequest{Refresh: pair.RefreshToken})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_EXPIRED", domainErr.Code)
}

func TestAuthService_Refresh_UserDeleted(t *testing.T) {
	service, userRepo, jwtService := newAuthServiceWithMocks()
	ctx := context.Background()

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "trader01",
		Role:     "user",
	})
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, userID).Return(nil, shared.ErrNotFound)

	_, err = service.Refresh(ctx, RefreshRequest{Refresh: pair.RefreshToken})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USER_NOT_FOUND", domainErr.Code)
}

func TestAuthService_UpdateProfile_MergesFields(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	require.NoError(t, user.SetPhone("+989121234567"))

	email := "new@example.com"
	newPassword := "another-password"
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	result, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
		Email:    &email,
		Password: &newPassword,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Email)
	assert.Equal(t, "new@example.com", *result.Email)
	require.NotNil(t, result.Phone)
	assert.Equal(t, "+989121234567", *result.Phone)
	assert.True(t, user.VerifyPassword("another-password"))
	assert.False(t, user.VerifyPassword("secret-password"))
	userRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile_InvalidEmail(t *testing.T) {
	service, userRepo, _ := newAuthServiceWithMocks()
	ctx := context.Background()

	user := newStoredUser(t, "trader01", "secret-password")
	bad := "not-an-email"
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{Email: &bad})

	require.Error(t, err)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
