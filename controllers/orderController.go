package controllers

import (
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/Kariqs/foodhub-api/services"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

// PlaceOrder checks out the customer's cart. A repeated Idempotency-Key
// returns the original order with 200 instead of 201.
func (h *Handler) PlaceOrder(ctx *gin.Context) {
	var data models.PlaceOrderData
	if !bindJSON(ctx, &data) {
		return
	}

	result, err := h.Checkout.PlaceOrder(ctx.Request.Context(), services.PlaceOrderInput{
		CustomerID:     currentUserID(ctx),
		AddressID:      data.AddressID,
		Specifications: data.Specifications,
		IdempotencyKey: ctx.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		ctx.Header(ReplayedHeader, "true")
	}
	sendJSONResponse(ctx, status, gin.H{
		"orderId":       result.Order.ID,
		"checkoutPrice": result.Order.CheckoutPrice,
		"status":        result.Order.Status,
	})
}

func (h *Handler) CancelOrder(ctx *gin.Context) {
	orderID, ok := uintQuery(ctx, "orderId")
	if !ok {
		return
	}
	order, err := h.Orders.Cancel(ctx.Request.Context(), currentUserID(ctx), orderID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (h *Handler) GetOrderHistory(ctx *gin.Context) {
	history, err := h.Orders.History(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": history})
}

func (h *Handler) MarkOrderPacked(ctx *gin.Context) {
	orderID, ok := uintParam(ctx, "orderId")
	if !ok {
		return
	}
	order, err := h.Orders.MarkPacked(ctx.Request.Context(), currentUserID(ctx), orderID)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (h *Handler) GetRestaurantOrders(ctx *gin.Context) {
	restaurantID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	orders, err := h.Orders.RestaurantOrders(ctx.Request.Context(), currentUserID(ctx), restaurantID, ctx.Query("status"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}
