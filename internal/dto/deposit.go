package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest defines the data needed to record a new deposit.
// It binds from a multipart form (the client submits FormData with an optional
// receipt file), so the amounts arrive as strings and are parsed by the service.
type CreateDepositRequest struct {
	CustomerID  string `form:"customerId" binding:"required"`
	Amount      string `form:"amount" binding:"required"`
	TotalAmount string `form:"totalAmount"` // Optional: absent means the deposit covers the full price
	Description string `form:"description"`
	Status      string `form:"status" binding:"omitempty,oneof=active applied refunded"`
}

// UpdateDepositRequest defines the data allowed for updating a deposit.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateDepositRequest struct {
	Amount      *string `form:"amount"`
	TotalAmount *string `form:"totalAmount"`
	Description *string `form:"description"`
	Status      *string `form:"status" binding:"omitempty,oneof=active applied refunded"`
}

// DepositResponse defines the data returned for a deposit.
type DepositResponse struct {
	DepositID   string          `json:"depositID"`
	CustomerID  string          `json:"customerID"`
	Amount      decimal.Decimal `json:"amount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Remaining   decimal.Decimal `json:"remaining"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	ReceiptKey  string          `json:"receiptKey,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToDepositResponse converts a domain.Deposit to DepositResponse DTO
func ToDepositResponse(d *domain.Deposit) DepositResponse {
	return DepositResponse{
		DepositID:   d.DepositID,
		CustomerID:  d.CustomerID,
		Amount:      d.Amount,
		TotalAmount: d.TotalAmount,
		Remaining:   d.Remainder(),
		Description: d.Description,
		Status:      string(d.Status),
		ReceiptKey:  d.ReceiptKey,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.LastUpdatedAt,
	}
}

// ToListDepositResponse converts a slice of domain.Deposit to DepositResponse DTOs
func ToListDepositResponse(deposits []domain.Deposit) []DepositResponse {
	res := make([]DepositResponse, len(deposits))
	for i, d := range deposits {
		res[i] = ToDepositResponse(&d)
	}
	return res
}

// ListDepositsParams defines query parameters for listing deposits.
type ListDepositsParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	CustomerID *string `form:"customerId"`
}

// ListDepositsResponse wraps the list of deposits with the pagination token.
type ListDepositsResponse struct {
	Deposits  []DepositResponse `json:"deposits"`
	NextToken *string           `json:"nextToken,omitempty"`
}
