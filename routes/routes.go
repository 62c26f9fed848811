package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/gin-gonic/gin"
)

// Register mounts every route group on the server.
func Register(server *gin.Engine, h *controllers.Handler, jwtSecret string, limiter *middlewares.IPRateLimiter) {
	DefaultRoutes(server)

	api := server.Group("/api/v1")
	AuthRoutes(api, h)
	CustomerRoutes(api, h, jwtSecret, limiter)
	RestaurantRoutes(api, h, jwtSecret)
	DeliveryPartnerRoutes(api, h, jwtSecret)
	ManagementRoutes(api, h, jwtSecret)
}
