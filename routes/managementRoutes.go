package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func ManagementRoutes(api *gin.RouterGroup, h *controllers.Handler, jwtSecret string) {
	management := api.Group("/management", middlewares.RequireAuth(jwtSecret), middlewares.RequireRole(models.RoleManagement))
	{
		management.GET("/dashboard", h.GetManagementDashboard)
		management.GET("/sales/export", h.ExportSales)
		management.GET("/support-queries", h.GetSupportQueries)
		management.PATCH("/support-queries/:id/resolve", h.ResolveSupportQuery)
	}
}
