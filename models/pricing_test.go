package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func pricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Dish{}, &Combo{}, &ComboDish{}, &Order{}, &OrderItem{}))
	return db
}

func TestOrderTotal(t *testing.T) {
	db := pricingTestDB(t)

	dish := Dish{Name: "Pho", Price: 50000, Status: DishStatusSelling}
	require.NoError(t, db.Create(&dish).Error)

	combo := Combo{Name: "Set", Discount: 10000}
	require.NoError(t, db.Create(&combo).Error)
	member := Dish{Name: "Rolls", Price: 45000, Status: DishStatusSelling}
	require.NoError(t, db.Create(&member).Error)
	require.NoError(t, db.Create(&ComboDish{ComboID: combo.ID, DishID: member.ID, Quantity: 2}).Error)

	require.NoError(t, db.Create(&OrderItem{OrderID: 1, Type: OrderItemTypeDish, DishID: &dish.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&OrderItem{OrderID: 1, Type: OrderItemTypeCombo, ComboID: &combo.ID, Quantity: 1}).Error)

	total, err := OrderTotal(db, 1)
	require.NoError(t, err)
	// 2 x 50000 + (2 x 45000 - 10000)
	require.InDelta(t, 180000, total, 0.001)
}

func TestOrderTotalSurvivesSoftDeletedDish(t *testing.T) {
	db := pricingTestDB(t)

	dish := Dish{Name: "Pho", Price: 50000, Status: DishStatusSelling}
	require.NoError(t, db.Create(&dish).Error)
	require.NoError(t, db.Create(&OrderItem{OrderID: 1, Type: OrderItemTypeDish, DishID: &dish.ID, Quantity: 1}).Error)

	// Remove the dish from the catalog after it was ordered.
	require.NoError(t, db.Delete(&dish).Error)

	total, err := OrderTotal(db, 1)
	require.NoError(t, err)
	require.InDelta(t, 50000, total, 0.001)
}

func TestOrderTotalSkipsDeletedItems(t *testing.T) {
	db := pricingTestDB(t)

	dish := Dish{Name: "Pho", Price: 50000, Status: DishStatusSelling}
	require.NoError(t, db.Create(&dish).Error)

	kept := OrderItem{OrderID: 1, Type: OrderItemTypeDish, DishID: &dish.ID, Quantity: 1}
	removed := OrderItem{OrderID: 1, Type: OrderItemTypeDish, DishID: &dish.ID, Quantity: 5}
	require.NoError(t, db.Create(&kept).Error)
	require.NoError(t, db.Create(&removed).Error)
	require.NoError(t, db.Delete(&removed).Error)

	total, err := OrderTotal(db, 1)
	require.NoError(t, err)
	require.InDelta(t, 50000, total, 0.001)
}
