package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	tradeapp "github.com/tradegate/backend/internal/application/trade"
	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/identity"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/trade"
)

// MockOrderRepository implements trade.RegisteredOrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.RegisteredOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.RegisteredOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByPublicToken(ctx context.Context, token uuid.UUID) (*trade.RegisteredOrder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.RegisteredOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.RegisteredOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.RegisteredOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]trade.RegisteredOrder, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]trade.RegisteredOrder), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindVerified(ctx context.Context, filter trade.MarketplaceFilter) ([]trade.RegisteredOrder, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.RegisteredOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ExistsByUserAndNumber(ctx context.Context, userID uuid.UUID, orderNumber string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, orderNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.RegisteredOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceGoods(ctx context.Context, order *trade.RegisteredOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHSCodeRepository implements catalog.HSCodeRepository for testing
type MockHSCodeRepository struct {
	mock.Mock
}

func (m *MockHSCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.HSCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.HSCode), args.Error(1)
}

func (m *MockHSCodeRepository) FindByCode(ctx context.Context, code string) (*catalog.HSCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.HSCode), args.Error(1)
}

func (m *MockHSCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.HSCode, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.HSCode), args.Error(1)
}

func (m *MockHSCodeRepository) FindByHeading(ctx context.Context, headingID uuid.UUID, filter shared.Filter) ([]catalog.HSCode, error) {
	args := m.Called(ctx, headingID, filter)
	return args.Get(0).([]catalog.HSCode), args.Error(1)
}

func (m *MockHSCodeRepository) Save(ctx context.Context, hsCode *catalog.HSCode) error {
	args := m.Called(ctx, hsCode)
	return args.Error(0)
}

func (m *MockHSCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHSCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository implements identity.UserRepository for testing
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

func setupMarketplaceTestRouter() (*gin.Engine, *MockOrderRepository, *MockHSCodeRepository, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	orderRepo := new(MockOrderRepository)
	hsCodeRepo := new(MockHSCodeRepository)
	userRepo := new(MockUserRepository)
	service := tradeapp.NewOrderService(orderRepo, hsCodeRepo, userRepo)
	handler := NewMarketplaceHandler(service)

	router := gin.New()
	router.GET("/marketplace", handler.List)
	router.GET("/marketplace/:token", handler.Detail)

	return router, orderRepo, hsCodeRepo, userRepo
}

func newVerifiedOrder(t *testing.T, username string, userRepo *MockUserRepository, hsCodeRepo *MockHSCodeRepository) *trade.RegisteredOrder {
	t.Helper()

	user, err := identity.NewUser(username, "secret-password")
	require.NoError(t, err)

	hsCode, err := catalog.NewHSCode("01012100", "fa", "en", "4", "U", uuid.New())
	require.NoError(t, err)

	order, err := trade.NewRegisteredOrder(user.ID, "ORD-1")
	require.NoError(t, err)
	good, err := trade.NewOrderGood(hsCode.ID, "widgets", decimal.NewFromInt(2), decimal.NewFromInt(10))
	require.NoError(t, err)
	order.ReplaceGoods([]trade.OrderGood{*good})
	order.SetVerified(true)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	hsCodeRepo.On("FindByID", mock.Anything, hsCode.ID).Return(hsCode, nil)

	return order
}

func TestMarketplaceHandler_List(t *testing.T) {
	t.Run("returns verified orders with pagination meta", func(t *testing.T) {
		router, orderRepo, hsCodeRepo, userRepo := setupMarketplaceTestRouter()

		order := newVerifiedOrder(t, "trader01", userRepo, hsCodeRepo)
		orderRepo.On("FindVerified", mock.Anything, mock.AnythingOfType("trade.MarketplaceFilter")).
			Return([]trade.RegisteredOrder{*order}, int64(1), nil)

		req := httptest.NewRequest(http.MethodGet, "/marketplace", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, true, response["success"])

		items := response["data"].([]interface{})
		require.Len(t, items, 1)
		first := items[0].(map[string]interface{})
		assert.Equal(t, "ORD-1", first["order_number"])
		assert.Equal(t, "trader01", first["user"])

		meta := response["meta"].(map[string]interface{})
		assert.Equal(t, float64(1), meta["total"])
		orderRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed query params", func(t *testing.T) {
		router, _, _, _ := setupMarketplaceTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/marketplace?page=0", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMarketplaceHandler_Detail(t *testing.T) {
	t.Run("returns a verified order", func(t *testing.T) {
		router, orderRepo, hsCodeRepo, userRepo := setupMarketplaceTestRouter()

		order := newVerifiedOrder(t, "trader01", userRepo, hsCodeRepo)
		orderRepo.On("FindByPublicToken", mock.Anything, order.PublicToken).Return(order, nil)

		req := httptest.NewRequest(http.MethodGet, "/marketplace/"+order.PublicToken.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, order.PublicToken.String(), data["uuid"])
		assert.Equal(t, true, data["verified"])
	})

	t.Run("hides unverified orders", func(t *testing.T) {
		router, orderRepo, _, _ := setupMarketplaceTestRouter()

		user, err := identity.NewUser("trader01", "secret-password")
		require.NoError(t, err)
		order, err := trade.NewRegisteredOrder(user.ID, "ORD-1")
		require.NoError(t, err)

		orderRepo.On("FindByPublicToken", mock.Anything, order.PublicToken).Return(order, nil)

		req := httptest.NewRequest(http.MethodGet, "/marketplace/"+order.PublicToken.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		router, _, _, _ := setupMarketplaceTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/marketplace/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
