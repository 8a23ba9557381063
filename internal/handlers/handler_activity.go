package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers routes related to the activity feed.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)
	rg.GET("/activities", h.listActivities)
}

// listActivities godoc
// @Summary List recent activity feed entries
// @Tags activities
// @Produce json
// @Param limit query int false "Number of entries" default(20)
// @Success 200 {object} dto.ListActivitiesResponse
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.activityService.ListActivities(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list activities")
		return
	}
	c.JSON(http.StatusOK, resp)
}
