package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// ReceivableReaderSvc defines read operations for receivable data
type ReceivableReaderSvc interface {
	// GetReceivableByID retrieves a specific receivable by its ID.
	GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)

	// ListReceivables retrieves a paginated list of receivables.
	ListReceivables(ctx context.Context, params dto.ListReceivablesParams) (*dto.ListReceivablesResponse, error)

	// ListPayments retrieves the payment history of a receivable.
	ListPayments(ctx context.Context, receivableID string) (*dto.ListPaymentsResponse, error)
}

// ReceivableWriterSvc defines write operations for receivable data
type ReceivableWriterSvc interface {
	// CreateReceivable records a new receivable.
	CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest) (*domain.Receivable, error)

	// UpdateReceivable updates receivable details and re-derives its status.
	UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest) (*domain.Receivable, error)

	// DeleteReceivable removes a receivable permanently.
	DeleteReceivable(ctx context.Context, receivableID string) error

	// ApplyPayment records a payment against a receivable: locks the row,
	// rejects overpayment and closed receivables, posts income in the same
	// transaction. idempotencyKey deduplicates retried submissions when non-empty.
	ApplyPayment(ctx context.Context, receivableID string, req dto.RecordPaymentRequest, receipt *dto.ReceiptUpload, idempotencyKey string) (*domain.Receivable, error)
}

// ReceivableSvcFacade combines all receivable-related service interfaces
type ReceivableSvcFacade interface {
	ReceivableReaderSvc
	ReceivableWriterSvc
}
