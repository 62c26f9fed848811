package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Kariqs/foodhub-api/reports"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetManagementDashboard(ctx *gin.Context) {
	dashboard, err := h.Dashboards.Management(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, dashboard)
}

func (h *Handler) ExportSales(ctx *gin.Context) {
	data, err := h.Dashboards.SalesWorkbook(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Transfer-Encoding", "binary")
	ctx.Data(http.StatusOK, reports.XLSXContentType, data)
}
