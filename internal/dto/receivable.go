package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceivableRequest defines the data needed to record a new receivable.
// DueDate is a calendar date in 2006-01-02 form.
type CreateReceivableRequest struct {
	CustomerID  string           `json:"customerId" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	PaidAmount  *decimal.Decimal `json:"paidAmount" binding:"omitempty,dgte0"` // Optional: already-paid portion at creation
	DueDate     string           `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Description string           `json:"description" binding:"required"`
	Notes       string           `json:"notes"`
	Status      string           `json:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
}

// UpdateReceivableRequest defines the data allowed for updating a receivable.
type UpdateReceivableRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,dgt0"`
	PaidAmount  *decimal.Decimal `json:"paidAmount" binding:"omitempty,dgte0"`
	DueDate     *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description"`
	Notes       *string          `json:"notes"`
	Status      *string          `json:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
}

// RecordPaymentRequest defines the data needed to record a payment against a
// receivable. It binds from a multipart form (optional receipt file alongside).
type RecordPaymentRequest struct {
	Amount string `form:"amount" binding:"required"`
}

// ReceivableResponse defines the data returned for a receivable.
type ReceivableResponse struct {
	ReceivableID string          `json:"receivableID"`
	CustomerID   string          `json:"customerID"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	Remaining    decimal.Decimal `json:"remaining"`
	DueDate      string          `json:"dueDate"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToReceivableResponse converts a domain.Receivable to ReceivableResponse DTO
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ReceivableID: r.ReceivableID,
		CustomerID:   r.CustomerID,
		Amount:       r.Amount,
		PaidAmount:   r.PaidAmount,
		Remaining:    r.Remaining(),
		DueDate:      r.DueDate.UTC().Format("2006-01-02"),
		Description:  r.Description,
		Notes:        r.Notes,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.LastUpdatedAt,
	}
}

// ToListReceivableResponse converts a slice of domain.Receivable to ReceivableResponse DTOs
func ToListReceivableResponse(receivables []domain.Receivable) []ReceivableResponse {
	res := make([]ReceivableResponse, len(receivables))
	for i, r := range receivables {
		res[i] = ToReceivableResponse(&r)
	}
	return res
}

// PaymentResponse defines the data returned for a recorded payment.
type PaymentResponse struct {
	PaymentID    string          `json:"paymentID"`
	ReceivableID string          `json:"receivableID"`
	Amount       decimal.Decimal `json:"amount"`
	ReceiptKey   string          `json:"receiptKey,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		ReceivableID: p.ReceivableID,
		Amount:       p.Amount,
		ReceiptKey:   p.ReceiptKey,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to PaymentResponse DTOs
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p)
	}
	return res
}

// ListReceivablesParams defines query parameters for listing receivables.
type ListReceivablesParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	CustomerID *string `form:"customerId"`
	Status     *string `form:"status" binding:"omitempty,oneof=pending paid overdue cancelled"`
}

// ListReceivablesResponse wraps the list of receivables with the pagination token.
type ListReceivablesResponse struct {
	Receivables []ReceivableResponse `json:"receivables"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ListPaymentsResponse wraps the payment history of a receivable.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}
