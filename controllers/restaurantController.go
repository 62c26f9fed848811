package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxImageSize = 5 << 20

// Customer-facing listing

func (h *Handler) GetRestaurants(ctx *gin.Context) {
	restaurants, err := h.Restaurants.ListOpen(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"restaurants": restaurants})
}

func (h *Handler) GetMenu(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	menu, err := h.Restaurants.Menu(ctx.Request.Context(), restaurantID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, menu)
}

// Owner endpoints

func (h *Handler) CreateRestaurant(ctx *gin.Context) {
	var input models.RestaurantInput
	if !bindJSON(ctx, &input) {
		return
	}
	r, err := h.Restaurants.Create(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, r)
}

func (h *Handler) GetMyRestaurants(ctx *gin.Context) {
	restaurants, err := h.Restaurants.ListOwned(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"restaurants": restaurants})
}

func (h *Handler) UpdateRestaurant(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var input models.RestaurantInput
	if !bindJSON(ctx, &input) {
		return
	}
	r, err := h.Restaurants.Update(ctx.Request.Context(), currentUserID(ctx), restaurantID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, r)
}

func (h *Handler) UploadRestaurantImage(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	ownerID := currentUserID(ctx)
	if _, err := h.Restaurants.Owned(ctx.Request.Context(), ownerID, restaurantID); err != nil {
		handleError(ctx, err)
		return
	}

	url, ok := h.uploadImage(ctx, "restaurants", restaurantID)
	if !ok {
		return
	}
	r, err := h.Restaurants.SetImage(ctx.Request.Context(), ownerID, restaurantID, url)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, r)
}

func (h *Handler) CreateFoodItem(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var input models.FoodItemInput
	if !bindJSON(ctx, &input) {
		return
	}
	item, err := h.Restaurants.AddFoodItem(ctx.Request.Context(), currentUserID(ctx), restaurantID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, item)
}

func (h *Handler) GetFoodItems(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	items, err := h.Restaurants.ListFoodItems(ctx.Request.Context(), currentUserID(ctx), restaurantID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) UpdateFoodItem(ctx *gin.Context) {
	itemID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var input models.FoodItemInput
	if !bindJSON(ctx, &input) {
		return
	}
	item, err := h.Restaurants.UpdateFoodItem(ctx.Request.Context(), currentUserID(ctx), itemID, input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, item)
}

func (h *Handler) DeleteFoodItem(ctx *gin.Context) {
	itemID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Restaurants.DeleteFoodItem(ctx.Request.Context(), currentUserID(ctx), itemID); err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "food item deleted"})
}

func (h *Handler) UploadFoodItemImage(ctx *gin.Context) {
	itemID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	ownerID := currentUserID(ctx)
	if _, err := h.Restaurants.OwnedFoodItem(ctx.Request.Context(), ownerID, itemID); err != nil {
		handleError(ctx, err)
		return
	}

	url, ok := h.uploadImage(ctx, "food-items", itemID)
	if !ok {
		return
	}
	item, err := h.Restaurants.SetFoodItemImage(ctx.Request.Context(), ownerID, itemID, url)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, item)
}

func (h *Handler) GetRestaurantDashboard(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	dashboard, err := h.Dashboards.Restaurant(ctx.Request.Context(), currentUserID(ctx), restaurantID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, dashboard)
}

// uploadImage reads the "image" form file and stores it under prefix/id.
func (h *Handler) uploadImage(ctx *gin.Context, prefix string, id uint) (string, bool) {
	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "image file is required", err)
		return "", false
	}
	if file.Size > maxImageSize {
		respondWithError(ctx, http.StatusBadRequest, "image must be at most 5MB", nil)
		return "", false
	}
	key, err := storage.ObjectKey(prefix, id, file.Filename)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "unsupported image type", err)
		return "", false
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "failed to read image", err)
		return "", false
	}
	defer f.Close()

	url, err := h.Uploader.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
	if errors.Is(err, storage.ErrNotConfigured) {
		respondWithError(ctx, http.StatusServiceUnavailable, "image uploads are not available", err)
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("image upload failed")
		respondWithError(ctx, http.StatusInternalServerError, "failed to upload image", err)
		return "", false
	}
	return url, true
}
