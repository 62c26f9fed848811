package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/foodhub-api/apperrors"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/geocoding"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/services"
	"github.com/Kariqs/foodhub-api/storage"
	"github.com/Kariqs/foodhub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const msgInternalServerError = "Internal server error"

// Handler carries the services every endpoint needs.
type Handler struct {
	Auth        *services.AuthService
	Carts       *services.CartService
	Checkout    *services.CheckoutService
	Orders      *services.OrderService
	Restaurants *services.RestaurantService
	Addresses   *services.AddressService
	Support     *services.SupportService
	Dashboards  *services.DashboardService
	Geocoder    *geocoding.Client
	Uploader    storage.Uploader
	Hub         *events.Hub
	Upgrader    websocket.Upgrader
}

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	ctx.AbortWithStatusJSON(statusCode, gin.H{
		"message": message,
		"reason":  reason,
	})
}

// handleError is the single place service errors become HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unhandled error")
		respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		return
	}

	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(appErr.Message)
	}
	ctx.AbortWithStatusJSON(status, gin.H{
		"message": appErr.Message,
		"reason":  appErr.Reason(),
	})
}

func bindJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		respondWithError(ctx, http.StatusBadRequest, utils.ValidationMessage(err), err)
		return false
	}
	return true
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	return parseID(ctx, name, ctx.Param(name))
}

func uintQuery(ctx *gin.Context, name string) (uint, bool) {
	return parseID(ctx, name, ctx.Query(name))
}

func parseID(ctx *gin.Context, name, raw string) (uint, bool) {
	if raw == "" {
		respondWithError(ctx, http.StatusBadRequest, name+" is required", nil)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondWithError(ctx, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return uint(id), true
}

func currentUserID(ctx *gin.Context) uint {
	if claims := middlewares.CurrentUser(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}
