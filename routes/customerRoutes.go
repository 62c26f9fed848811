package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func CustomerRoutes(api *gin.RouterGroup, h *controllers.Handler, jwtSecret string, limiter *middlewares.IPRateLimiter) {
	customer := api.Group("/customer", middlewares.RequireAuth(jwtSecret), middlewares.RequireRole(models.RoleCustomer))
	{
		customer.GET("/restaurants", h.GetRestaurants)
		customer.GET("/restaurants/:id/menu", h.GetMenu)

		customer.GET("/cart", h.GetCart)
		customer.DELETE("/cart", h.ClearCart)
		customer.POST("/add-to-cart", h.AddToCart)
		customer.POST("/remove-from-cart", h.RemoveFromCart)

		customer.GET("/addresses", h.GetAddresses)
		customer.POST("/addresses", h.CreateAddress)
		customer.DELETE("/addresses/:id", h.DeleteAddress)

		customer.POST("/place-order", middlewares.RateLimit(limiter), h.PlaceOrder)
		customer.POST("/cancel-order", h.CancelOrder)
		customer.GET("/order-history", h.GetOrderHistory)

		customer.GET("/support-queries", h.GetMySupportQueries)
		customer.POST("/support-queries", h.CreateSupportQuery)

		customer.GET("/geocode", h.Geocode)
		customer.GET("/reverse-geocode", h.ReverseGeocode)
	}
}
