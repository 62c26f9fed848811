package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Geocode(ctx *gin.Context) {
	places, err := h.Geocoder.Search(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"places": places})
}

func (h *Handler) ReverseGeocode(ctx *gin.Context) {
	lat, latErr := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(ctx.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondWithError(ctx, http.StatusBadRequest, "lat and lng must be numbers", nil)
		return
	}
	place, err := h.Geocoder.Reverse(ctx.Request.Context(), lat, lng)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, place)
}
