package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
)

// depositHandler handles HTTP requests related to deposits.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

// newDepositHandler creates a new depositHandler.
func newDepositHandler(ds portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositService: ds}
}

// registerDepositRoutes registers routes related to deposits.
func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositService)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("", h.listDeposits)
		deposits.GET("/:id", h.getDeposit)
		deposits.PUT("/:id", h.updateDeposit)
		deposits.DELETE("/:id", h.deleteDeposit)
	}
}

// createDeposit godoc
// @Summary Record a new deposit
// @Description Records a deposit taken from a customer. A partial deposit creates a receivable for the remainder; a full deposit posts income. Accepts an optional receipt file.
// @Tags deposits
// @Accept mpfd
// @Produce json
// @Param customerId formData string true "Customer ID"
// @Param amount formData string true "Amount received"
// @Param totalAmount formData string false "Agreed total price"
// @Param description formData string false "Description"
// @Param status formData string false "Deposit status" Enums(active, applied, refunded)
// @Param receipt formData file false "Receipt file"
// @Success 201 {object} dto.DepositResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 502 {object} map[string]string "Attachment store unavailable"
// @Router /deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepositRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for CreateDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var upload *dto.ReceiptUpload
	if fh, err := c.FormFile("receipt"); err == nil {
		var closeFn func()
		upload, closeFn, err = receiptFromFileHeader(fh)
		if err != nil {
			logger.Warn("Failed to open uploaded receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded receipt"})
			return
		}
		defer closeFn()
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), req, upload)
	if err != nil {
		respondServiceError(c, err, "create deposit")
		return
	}

	logger.Info("Deposit created successfully", slog.String("deposit_id", deposit.DepositID))
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// listDeposits godoc
// @Summary List deposits
// @Description Retrieves deposits, newest first, with token-based pagination.
// @Tags deposits
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} dto.ListDepositsResponse
// @Router /deposits [get]
func (h *depositHandler) listDeposits(c *gin.Context) {
	var params dto.ListDepositsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.depositService.ListDeposits(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list deposits")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDeposit godoc
// @Summary Get a deposit by ID
// @Tags deposits
// @Produce json
// @Param id path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 404 {object} map[string]string "Deposit not found"
// @Router /deposits/{id} [get]
func (h *depositHandler) getDeposit(c *gin.Context) {
	deposit, err := h.depositService.GetDepositByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// updateDeposit godoc
// @Summary Update a deposit
// @Description Updates deposit details. A new receipt file replaces the stored one.
// @Tags deposits
// @Accept mpfd
// @Produce json
// @Param id path string true "Deposit ID"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Deposit not found"
// @Router /deposits/{id} [put]
func (h *depositHandler) updateDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateDepositRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for UpdateDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var upload *dto.ReceiptUpload
	if fh, err := c.FormFile("receipt"); err == nil {
		var closeFn func()
		upload, closeFn, err = receiptFromFileHeader(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded receipt"})
			return
		}
		defer closeFn()
	}

	deposit, err := h.depositService.UpdateDeposit(c.Request.Context(), c.Param("id"), req, upload)
	if err != nil {
		respondServiceError(c, err, "update deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// deleteDeposit godoc
// @Summary Delete a deposit
// @Description Removes a deposit. Income posted when the deposit was taken is not reversed.
// @Tags deposits
// @Param id path string true "Deposit ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Deposit not found"
// @Router /deposits/{id} [delete]
func (h *depositHandler) deleteDeposit(c *gin.Context) {
	if err := h.depositService.DeleteDeposit(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "delete deposit")
		return
	}
	c.Status(http.StatusNoContent)
}
