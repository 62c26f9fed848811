package middlewares

import (
	"net/http"
	"slices"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := CurrentUser(ctx)
		if claims == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not found in context", "reason": ""})
			return
		}

		if !slices.Contains(roles, claims.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "access denied for role " + string(claims.Role), "reason": ""})
			return
		}

		ctx.Next()
	}
}
