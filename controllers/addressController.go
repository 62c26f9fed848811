package controllers

import (
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAddresses(ctx *gin.Context) {
	addresses, err := h.Addresses.List(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

func (h *Handler) CreateAddress(ctx *gin.Context) {
	var input models.AddressInput
	if !bindJSON(ctx, &input) {
		return
	}
	address, err := h.Addresses.Create(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, address)
}

func (h *Handler) DeleteAddress(ctx *gin.Context) {
	addressID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Addresses.Delete(ctx.Request.Context(), currentUserID(ctx), addressID); err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "address deleted"})
}
