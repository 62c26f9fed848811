package controllers

import (
	"net/http"

	"github.com/Kariqs/foodhub-api/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateSupportQuery(ctx *gin.Context) {
	var input models.SupportQueryInput
	if !bindJSON(ctx, &input) {
		return
	}
	q, err := h.Support.Create(ctx.Request.Context(), currentUserID(ctx), input)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, q)
}

func (h *Handler) GetMySupportQueries(ctx *gin.Context) {
	queries, err := h.Support.ListForCustomer(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"queries": queries})
}

func (h *Handler) GetSupportQueries(ctx *gin.Context) {
	queries, err := h.Support.List(ctx.Request.Context(), ctx.Query("status"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"queries": queries})
}

func (h *Handler) ResolveSupportQuery(ctx *gin.Context) {
	queryID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var input models.ResolveQueryInput
	if !bindJSON(ctx, &input) {
		return
	}
	q, err := h.Support.Resolve(ctx.Request.Context(), currentUserID(ctx), queryID, input.Response)
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, q)
}
