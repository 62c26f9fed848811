package models

import "gorm.io/gorm"

// CartItem is one cart line. Food metadata (price, discount) is read from
// the joined FoodItem at pricing time, never copied onto the line.
type CartItem struct {
	gorm.Model
	CustomerID   uint     `json:"customerId" gorm:"uniqueIndex:idx_cart_customer_item"`
	RestaurantID uint     `json:"restaurantId" gorm:"index"`
	FoodItemID   uint     `json:"foodItemId" gorm:"uniqueIndex:idx_cart_customer_item"`
	Quantity     int      `json:"quantity" gorm:"not null"`
	FoodItem     FoodItem `json:"foodItem" gorm:"foreignKey:FoodItemID"`
}

type CartItemInput struct {
	ItemID  uint `json:"itemId" binding:"required"`
	Replace bool `json:"replace"`
}
