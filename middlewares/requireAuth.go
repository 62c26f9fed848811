package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/foodhub-api/utils"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// RequireAuth validates the bearer token and stores its claims on the context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token", "reason": ""})
			return
		}

		claims, err := utils.ParseJWT(strings.TrimSpace(tokenString), jwtSecret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token", "reason": err.Error()})
			return
		}

		ctx.Set(userKey, claims)
		ctx.Next()
	}
}

// CurrentUser returns the claims stored by RequireAuth, or nil.
func CurrentUser(ctx *gin.Context) *utils.Claims {
	v, ok := ctx.Get(userKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
