package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
)

// receivableHandler handles HTTP requests related to receivables and payments.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

// newReceivableHandler creates a new receivableHandler.
func newReceivableHandler(rs portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{receivableService: rs}
}

// RegisterReceivableRoutes registers routes related to receivables.
func RegisterReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)

	receivables := rg.Group("/receivables")
	{
		receivables.POST("", h.createReceivable)
		receivables.GET("", h.listReceivables)
		receivables.GET("/:id", h.getReceivable)
		receivables.PUT("/:id", h.updateReceivable)
		receivables.DELETE("/:id", h.deleteReceivable)
		receivables.POST("/:id/pay", h.recordPayment)
		receivables.GET("/:id/payments", h.listPayments)
	}
}

// createReceivable godoc
// @Summary Record a new receivable
// @Tags receivables
// @Accept json
// @Produce json
// @Param receivable body dto.CreateReceivableRequest true "Receivable details"
// @Success 201 {object} dto.ReceivableResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /receivables [post]
func (h *receivableHandler) createReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceivable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receivable, err := h.receivableService.CreateReceivable(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "create receivable")
		return
	}

	logger.Info("Receivable created successfully", slog.String("receivable_id", receivable.ReceivableID))
	c.JSON(http.StatusCreated, dto.ToReceivableResponse(receivable))
}

// listReceivables godoc
// @Summary List receivables
// @Description Retrieves receivables, newest first, with token-based pagination. Overdue state is re-derived at read time.
// @Tags receivables
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Param customerId query string false "Filter by customer"
// @Param status query string false "Filter by status" Enums(pending, paid, overdue, cancelled)
// @Success 200 {object} dto.ListReceivablesResponse
// @Router /receivables [get]
func (h *receivableHandler) listReceivables(c *gin.Context) {
	var params dto.ListReceivablesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.receivableService.ListReceivables(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "list receivables")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getReceivable godoc
// @Summary Get a receivable by ID
// @Tags receivables
// @Produce json
// @Param id path string true "Receivable ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} map[string]string "Receivable not found"
// @Router /receivables/{id} [get]
func (h *receivableHandler) getReceivable(c *gin.Context) {
	receivable, err := h.receivableService.GetReceivableByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve receivable")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// updateReceivable godoc
// @Summary Update a receivable
// @Description Updates receivable details and re-derives its status. Setting status to cancelled pins it.
// @Tags receivables
// @Accept json
// @Produce json
// @Param id path string true "Receivable ID"
// @Param receivable body dto.UpdateReceivableRequest true "Fields to update"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Receivable not found"
// @Router /receivables/{id} [put]
func (h *receivableHandler) updateReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateReceivable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receivable, err := h.receivableService.UpdateReceivable(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "update receivable")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// deleteReceivable godoc
// @Summary Delete a receivable
// @Tags receivables
// @Param id path string true "Receivable ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Receivable not found"
// @Router /receivables/{id} [delete]
func (h *receivableHandler) deleteReceivable(c *gin.Context) {
	if err := h.receivableService.DeleteReceivable(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "delete receivable")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a receivable
// @Description Applies a payment inside a single database transaction. Overpayment is rejected; a closed receivable conflicts. An Idempotency-Key header deduplicates retries.
// @Tags receivables
// @Accept mpfd
// @Produce json
// @Param id path string true "Receivable ID"
// @Param amount formData string true "Payment amount"
// @Param receipt formData file false "Receipt file"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} map[string]string "Validation error (including overpayment)"
// @Failure 404 {object} map[string]string "Receivable not found"
// @Failure 409 {object} map[string]string "Receivable closed or key already used"
// @Router /receivables/{id}/pay [post]
func (h *receivableHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for RecordPayment", slog.String("error", err.Error()))
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

	idempotencyKey := c.GetHeader("Idempotency-Key")
	receivable, err := h.receivableService.ApplyPayment(c.Request.Context(), c.Param("id"), req, upload, idempotencyKey)
	if err != nil {
		respondServiceError(c, err, "record payment")
		return
	}

	logger.Info("Payment recorded successfully", slog.String("receivable_id", receivable.ReceivableID))
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

// listPayments godoc
// @Summary List payments recorded against a receivable
// @Tags receivables
// @Produce json
// @Param id path string true "Receivable ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Receivable not found"
// @Router /receivables/{id}/payments [get]
func (h *receivableHandler) listPayments(c *gin.Context) {
	resp, err := h.receivableService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, resp)
}
