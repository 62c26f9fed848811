package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetAvailableOrders(ctx *gin.Context) {
	orders, err := h.Orders.AvailableForPickup(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetMyDeliveries(ctx *gin.Context) {
	orders, err := h.Orders.PartnerOrders(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) AcceptOrder(ctx *gin.Context) {
	orderID, ok := uintParam(ctx, "orderId")
	if !ok {
		return
	}
	order, err := h.Orders.Accept(ctx.Request.Context(), currentUserID(ctx), orderID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (h *Handler) DeliverOrder(ctx *gin.Context) {
	orderID, ok := uintParam(ctx, "orderId")
	if !ok {
		return
	}
	order, err := h.Orders.Deliver(ctx.Request.Context(), currentUserID(ctx), orderID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}
