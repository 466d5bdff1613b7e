package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/internal/service/reports"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/dashboard-stats", h.dashboardStats)
}

func (h *ReportHandler) dashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
