package repositories

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReceivableReader defines read operations for receivable data
type ReceivableReader interface {
	// FindReceivableByID retrieves a specific receivable by its unique identifier.
	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// ListReceivables retrieves a paginated list of receivables, newest first,
	// using token-based pagination. customerID and status narrow the list when non-nil.
	ListReceivables(ctx context.Context, limit int, nextToken *string, customerID *string, status *domain.ReceivableStatus) ([]domain.Receivable, *string, error)

	// ListPaymentsByReceivable retrieves the payment history of a receivable, newest first.
	ListPaymentsByReceivable(ctx context.Context, receivableID string) ([]domain.Payment, error)
}

// ReceivableWriter defines write operations for receivable data
type ReceivableWriter interface {
	// SaveReceivable persists a new receivable.
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error

	// SaveReceivableInTx persists a new receivable within an existing transaction.
	SaveReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error

	// UpdateReceivableInTx persists changes to an existing receivable within
	// an existing transaction. Callers hold the row lock from
	// FindReceivableForUpdate so a concurrent payment cannot be overwritten.
	UpdateReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error

	// DeleteReceivable removes a receivable permanently.
	DeleteReceivable(ctx context.Context, receivableID string) error

	// FindReceivableForUpdate locks the receivable row for the duration of the
	// transaction and returns its current state.
	FindReceivableForUpdate(ctx context.Context, tx pgx.Tx, receivableID string) (*domain.Receivable, error)

	// ApplyPaymentInTx updates the receivable's paid amount and status within
	// an existing transaction.
	ApplyPaymentInTx(ctx context.Context, tx pgx.Tx, receivableID string, paidAmount decimal.Decimal, status domain.ReceivableStatus, updatedAt time.Time) error

	// SavePaymentInTx persists a payment row within an existing transaction.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
}

// ReceivableRepositoryFacade combines all receivable-related repository interfaces
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}

// ReceivableRepositoryWithTx extends ReceivableRepositoryFacade with transaction capabilities
type ReceivableRepositoryWithTx interface {
	ReceivableRepositoryFacade
	TransactionManager
}
