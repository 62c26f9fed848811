package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FoodItem struct {
	gorm.Model
	RestaurantID    uint            `json:"restaurantId" gorm:"index"`
	Name            string          `json:"name" gorm:"size:191;not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPercent decimal.Decimal `json:"discountPercent" gorm:"type:decimal(5,2);not null"`
	DiscountCap     decimal.Decimal `json:"discountCap" gorm:"type:decimal(10,2);not null"`
	IsVeg           bool            `json:"isVeg"`
	Available       bool            `json:"available"`
	ImageUrl        string          `json:"imageUrl"`
}

type FoodItemInput struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	DiscountCap     *decimal.Decimal `json:"discountCap"`
	IsVeg           bool             `json:"isVeg"`
	Available       *bool            `json:"available"`
}
