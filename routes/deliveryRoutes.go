package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func DeliveryPartnerRoutes(api *gin.RouterGroup, h *controllers.Handler, jwtSecret string) {
	partner := api.Group("/delivery-partner", middlewares.RequireAuth(jwtSecret), middlewares.RequireRole(models.RoleDeliveryPartner))
	{
		partner.GET("/orders/available", h.GetAvailableOrders)
		partner.GET("/orders", h.GetMyDeliveries)
		partner.POST("/orders/:orderId/accept", h.AcceptOrder)
		partner.POST("/orders/:orderId/deliver", h.DeliverOrder)
	}
}
