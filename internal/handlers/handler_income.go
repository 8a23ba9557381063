package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(is portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{incomeService: is}
}

// registerIncomeRoutes registers routes related to the income ledger.
func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := newIncomeHandler(incomeService)
	rg.GET("/income", h.listIncome)
}

// listIncome godoc
// @Summary List income ledger entries
// @Description Retrieves income entries, newest first, with token-based pagination.
// @Tags income
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListIncomeResponse
// @Router /income [get]
func (h *incomeHandler) listIncome(c *gin.Context) {
	var params dto.ListIncomeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.incomeService.ListIncome(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list income entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
