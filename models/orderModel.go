package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusPacked    OrderStatus = "Packed"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	gorm.Model
	CustomerID        uint            `json:"customerId" gorm:"index;uniqueIndex:idx_orders_customer_idempotency"`
	RestaurantID      uint            `json:"restaurantId" gorm:"index"`
	AddressID         uint            `json:"addressId"`
	DeliveryPartnerID *uint           `json:"deliveryPartnerId" gorm:"index"`
	Specifications    string          `json:"specifications" gorm:"type:text"`
	TotalPrice        decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	TotalDiscount     decimal.Decimal `json:"totalDiscount" gorm:"type:decimal(10,2);not null"`
	DeliveryCharge    decimal.Decimal `json:"deliveryCharge" gorm:"type:decimal(10,2);not null"`
	PlatformCharge    decimal.Decimal `json:"platformCharge" gorm:"type:decimal(10,2);not null"`
	CheckoutPrice     decimal.Decimal `json:"checkoutPrice" gorm:"type:decimal(10,2);not null"`
	Status            OrderStatus     `json:"status" gorm:"size:20;index;not null"`
	IdempotencyKey    *string         `json:"-" gorm:"size:64;uniqueIndex:idx_orders_customer_idempotency"`
	Lines             []OrderLine     `json:"lines,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Address           CustomerAddress `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Restaurant        Restaurant      `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DeliveryPartner   *User           `json:"deliveryPartner,omitempty" gorm:"foreignKey:DeliveryPartnerID"`
}

// OrderLine stores the discounted unit price actually charged (Price) next to
// the listed price at checkout time. Price keeps six decimals: a two-decimal
// price times a two-decimal percent over 100 is always exact at that scale.
type OrderLine struct {
	gorm.Model
	OrderID    uint            `json:"orderId" gorm:"index"`
	FoodItemID uint            `json:"itemId" gorm:"index"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	ListPrice  decimal.Decimal `json:"listPrice" gorm:"type:decimal(10,2);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(16,6);not null"`
	FoodItem   FoodItem        `json:"foodItem,omitempty" gorm:"foreignKey:FoodItemID"`
}

type PlaceOrderData struct {
	Specifications string `json:"specifications"`
	AddressID      uint   `json:"addressId" binding:"required"`
}
