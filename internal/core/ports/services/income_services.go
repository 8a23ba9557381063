package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// IncomeReaderSvc defines read operations over the income ledger.
type IncomeReaderSvc interface {
	// ListIncome retrieves a paginated list of income entries.
	ListIncome(ctx context.Context, params dto.ListIncomeParams) (*dto.ListIncomeResponse, error)
}

// IncomeSvcFacade is the full income service surface. Writes happen inside
// deposit and payment transactions, never through a public operation.
type IncomeSvcFacade interface {
	IncomeReaderSvc
}
