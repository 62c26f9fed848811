package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to FoodHub API. All endpoints live under /api/v1.

AUTH
- POST "/auth/:role/signup" - Create an account (customer, restaurant, delivery-partner)
- POST "/auth/:role/login" - Obtain a bearer token

CUSTOMER
- GET "/customer/restaurants" - Open restaurants
- GET "/customer/restaurants/:id/menu" - Restaurant menu
- GET, DELETE "/customer/cart" - View or clear the cart
- POST "/customer/add-to-cart", "/customer/remove-from-cart" - Change cart quantities
- POST "/customer/place-order" - Check out the cart
- POST "/customer/cancel-order?orderId=" - Cancel a preparing order
- GET "/customer/order-history" - Past and active orders

RESTAURANT
- POST, GET "/restaurant/restaurants" - Manage restaurants
- GET, POST "/restaurant/restaurants/:id/food-items" - Manage the menu
- POST "/restaurant/orders/:orderId/packed" - Mark an order packed
- GET "/restaurant/live?restaurantId=" - Live order feed (websocket)

DELIVERY PARTNER
- GET "/delivery-partner/orders/available" - Packed orders awaiting pickup
- POST "/delivery-partner/orders/:orderId/accept", "/deliver"

MANAGEMENT
- GET "/management/dashboard", "/management/sales/export"
- GET "/management/support-queries", PATCH "/management/support-queries/:id/resolve"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
