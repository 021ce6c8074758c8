package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tradegate/backend/internal/domain/catalog"
	"github.com/tradegate/backend/internal/domain/trade"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(
		&catalog.Season{},
		&catalog.Heading{},
		&catalog.HSCode{},
		&trade.RegisteredOrder{},
		&trade.OrderGood{},
	)
	require.NoError(t, err)

	return db
}

func TestGormHSCodeRepository_Delete_CascadesToOrderGoods(t *testing.T) {
	db := setupOrderTestDB(t)
	ctx := context.Background()

	season, err := catalog.NewSeason("01", "Live animals", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(season).Error)

	hsCode, err := catalog.NewHSCode("01012910", "اسب", "Horses", "5", catalog.DefaultSUQ, season.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(hsCode).Error)

	order, err := trade.NewRegisteredOrder(uuid.New(), "ORD-1")
	require.NoError(t, err)

	good, err := trade.NewOrderGood(hsCode.ID, "Horses", decimal.NewFromInt(2), decimal.NewFromFloat(10.5))
	require.NoError(t, err)
	good.OrderID = order.ID
	order.Goods = []trade.OrderGood{*good}
	require.NoError(t, db.Create(order).Error)

	var before int64
	require.NoError(t, db.Model(&trade.OrderGood{}).Count(&before).Error)
	require.EqualValues(t, 1, before)

	repo := NewGormHSCodeRepository(db)
	require.NoError(t, repo.Delete(ctx, hsCode.ID))

	// removing a classification removes the goods lines priced against it,
	// while the order itself stays
	var goods int64
	require.NoError(t, db.Model(&trade.OrderGood{}).Count(&goods).Error)
	assert.EqualValues(t, 0, goods)

	var orders int64
	require.NoError(t, db.Model(&trade.RegisteredOrder{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestGormRegisteredOrderRepository_Delete_RemovesGoods(t *testing.T) {
	db := setupOrderTestDB(t)
	ctx := context.Background()

	season, err := catalog.NewSeason("01", "Live animals", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(season).Error)

	hsCode, err := catalog.NewHSCode("01012910", "اسب", "Horses", "5", catalog.DefaultSUQ, season.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(hsCode).Error)

	order, err := trade.NewRegisteredOrder(uuid.New(), "ORD-2")
	require.NoError(t, err)
	good, err := trade.NewOrderGood(hsCode.ID, "Horses", decimal.NewFromInt(1), decimal.NewFromInt(100))
	require.NoError(t, err)
	good.OrderID = order.ID
	order.Goods = []trade.OrderGood{*good}
	require.NoError(t, db.Create(order).Error)

	repo := NewGormRegisteredOrderRepository(db)
	require.NoError(t, repo.Delete(ctx, order.ID))

	var goods int64
	require.NoError(t, db.Model(&trade.OrderGood{}).Count(&goods).Error)
	assert.EqualValues(t, 0, goods)
}
