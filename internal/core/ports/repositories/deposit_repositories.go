package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DepositReader defines read operations for deposit data
type DepositReader interface {
	// FindDepositByID retrieves a specific deposit by its unique identifier.
	FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)

	// ListDeposits retrieves a paginated list of deposits, newest first, using
	// token-based pagination. customerID narrows the list when non-nil.
	ListDeposits(ctx context.Context, limit int, nextToken *string, customerID *string) ([]domain.Deposit, *string, error)
}

// DepositWriter defines write operations for deposit data
type DepositWriter interface {
	// SaveDepositInTx persists a new deposit within an existing transaction.
	SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error

	// FindDepositForUpdate locks the deposit row for the duration of the
	// transaction and returns its current state.
	FindDepositForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error)

	// UpdateDepositInTx persists changes to an existing deposit within an
	// existing transaction. Callers hold the row lock from FindDepositForUpdate.
	UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error

	// DeleteDeposit removes a deposit permanently.
	DeleteDeposit(ctx context.Context, depositID string) error
}

// DepositRepositoryFacade combines all deposit-related repository interfaces
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}

// DepositRepositoryWithTx extends DepositRepositoryFacade with transaction capabilities
type DepositRepositoryWithTx interface {
	DepositRepositoryFacade
	TransactionManager
}
