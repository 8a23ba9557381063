package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the dashboard aggregate route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)
	rg.GET("/dashboard/stats", h.getStats)
}

// getStats godoc
// @Summary Get the dashboard aggregate
// @Description Returns customer count, current-month income, outstanding receivables and active deposit totals. Served from cache between mutations.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getStats(c *gin.Context) {
	resp, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, resp)
}
