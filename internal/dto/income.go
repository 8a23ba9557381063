package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IncomeEntryResponse defines the data returned for an income ledger entry.
type IncomeEntryResponse struct {
	IncomeID    string          `json:"incomeID"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	ReferenceID string          `json:"referenceID"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToIncomeEntryResponse converts a domain.IncomeEntry to IncomeEntryResponse DTO
func ToIncomeEntryResponse(e *domain.IncomeEntry) IncomeEntryResponse {
	return IncomeEntryResponse{
		IncomeID:    e.IncomeID,
		Amount:      e.Amount,
		Source:      string(e.Source),
		ReferenceID: e.ReferenceID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToListIncomeEntryResponse converts a slice of domain.IncomeEntry to DTOs
func ToListIncomeEntryResponse(entries []domain.IncomeEntry) []IncomeEntryResponse {
	res := make([]IncomeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToIncomeEntryResponse(&e)
	}
	return res
}

// ListIncomeParams defines query parameters for listing income entries.
type ListIncomeParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListIncomeResponse wraps the income entry list with the pagination token.
type ListIncomeResponse struct {
	Entries   []IncomeEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
