package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// IncomeReader defines read operations for the income ledger
type IncomeReader interface {
	// ListIncomeEntries retrieves a paginated list of income entries, newest first.
	ListIncomeEntries(ctx context.Context, limit int, nextToken *string) ([]domain.IncomeEntry, *string, error)
}

// IncomeWriter defines write operations for the income ledger
type IncomeWriter interface {
	// SaveIncomeEntryInTx persists an income entry within an existing transaction.
	// Income posting shares the transaction of the mutation that earned it.
	SaveIncomeEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error
}

// IncomeRepositoryFacade combines all income-ledger repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
}
