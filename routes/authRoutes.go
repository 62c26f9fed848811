package routes

import (
	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, h *controllers.Handler) {
	auth := api.Group("/auth")
	{
		auth.POST("/:role/signup", h.Signup)
		auth.POST("/:role/login", h.Login)
	}
}
