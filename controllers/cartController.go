package controllers

import (
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCart(ctx *gin.Context) {
	view, err := h.Carts.View(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, view)
}

func (h *Handler) AddToCart(ctx *gin.Context) {
	var input models.CartItemInput
	if !bindJSON(ctx, &input) {
		return
	}
	view, err := h.Carts.Add(ctx.Request.Context(), currentUserID(ctx), input.ItemID, input.Replace)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, view)
}

func (h *Handler) RemoveFromCart(ctx *gin.Context) {
	var input models.CartItemInput
	if !bindJSON(ctx, &input) {
		return
	}
	view, err := h.Carts.Remove(ctx.Request.Context(), currentUserID(ctx), input.ItemID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, view)
}

func (h *Handler) ClearCart(ctx *gin.Context) {
	if err := h.Carts.Clear(ctx.Request.Context(), currentUserID(ctx)); err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "cart cleared"})
}
