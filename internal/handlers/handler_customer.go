package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// customerHandler exposes the read-only customer directory.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
	}
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCustomersResponse
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	var params dto.ListCustomersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.customerService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
