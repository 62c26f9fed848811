// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/Kariqs/foodhub-api/initializers"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Fullname: email, Email: email, Phone: "0700000000", Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{OwnerID: ownerID, Name: name, AddressLine: "1 Main St", IsOpen: true}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func CreateFoodItem(t *testing.T, db *gorm.DB, restaurantID uint, name, price, percent, capAmount string) models.FoodItem {
	t.Helper()
	item := models.FoodItem{
		RestaurantID:    restaurantID,
		Name:            name,
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(percent),
		DiscountCap:     decimal.RequireFromString(capAmount),
		Available:       true,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func CreateAddress(t *testing.T, db *gorm.DB, customerID uint) models.CustomerAddress {
	t.Helper()
	a := models.CustomerAddress{CustomerID: customerID, Label: "home", Line1: "12 Elm Rd", City: "Nairobi", Pincode: "00100"}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func AddToCart(t *testing.T, db *gorm.DB, customerID uint, item models.FoodItem, qty int) {
	t.Helper()
	line := models.CartItem{CustomerID: customerID, RestaurantID: item.RestaurantID, FoodItemID: item.ID, Quantity: qty}
	require.NoError(t, db.Create(&line).Error)
}
