package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/agrovia/farm_ops_app/internal/core/ports/services"
	"github.com/agrovia/farm_ops_app/internal/dto"
	"github.com/agrovia/farm_ops_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// dashboardHandler handles HTTP requests for aggregated reporting.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newDashboardHandler(rs portssvc.ReportingSvcFacade) *dashboardHandler {
	return &dashboardHandler{
		reportingService: rs,
	}
}

// RegisterDashboardRoutes registers the dashboard reporting routes.
func RegisterDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newDashboardHandler(reportingService)

	dashboard := rg.Group("/dashboard", middleware.RequireAdmin())
	{
		dashboard.GET("/stats", h.getDashboardStats)
	}
}

// getDashboardStats godoc
// @Summary Get dashboard counters
// @Description Returns the headline counters for the admin dashboard
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute dashboard stats"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getDashboardStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.GetDashboardStats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute dashboard stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(stats))
}
