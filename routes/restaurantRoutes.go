package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(api *gin.RouterGroup, h *controllers.Handler, jwtSecret string) {
	restaurant := api.Group("/restaurant", middlewares.RequireAuth(jwtSecret), middlewares.RequireRole(models.RoleRestaurantOwner))
	{
		restaurant.POST("/restaurants", h.CreateRestaurant)
		restaurant.GET("/restaurants", h.GetMyRestaurants)
		restaurant.PUT("/restaurants/:id", h.UpdateRestaurant)
		restaurant.POST("/restaurants/:id/image", h.UploadRestaurantImage)
		restaurant.GET("/restaurants/:id/food-items", h.GetFoodItems)
		restaurant.POST("/restaurants/:id/food-items", h.CreateFoodItem)
		restaurant.GET("/restaurants/:id/orders", h.GetRestaurantOrders)
		restaurant.GET("/restaurants/:id/dashboard", h.GetRestaurantDashboard)

		restaurant.PUT("/food-items/:id", h.UpdateFoodItem)
		restaurant.DELETE("/food-items/:id", h.DeleteFoodItem)
		restaurant.POST("/food-items/:id/image", h.UploadFoodItemImage)

		restaurant.POST("/orders/:orderId/packed", h.MarkOrderPacked)
		restaurant.GET("/live", h.LiveOrders)
	}
}
