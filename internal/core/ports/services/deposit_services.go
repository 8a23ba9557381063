package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// DepositReaderSvc defines read operations for deposit data
type DepositReaderSvc interface {
	// GetDepositByID retrieves a specific deposit by its ID.
	GetDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)

	// ListDeposits retrieves a paginated list of deposits.
	ListDeposits(ctx context.Context, params dto.ListDepositsParams) (*dto.ListDepositsResponse, error)
}

// DepositWriterSvc defines write operations for deposit data
type DepositWriterSvc interface {
	// CreateDeposit records a new deposit. A partial deposit additionally
	// creates the remainder receivable; a full deposit posts income.
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, receipt *dto.ReceiptUpload) (*domain.Deposit, error)

	// UpdateDeposit updates deposit details, replacing the receipt when a new
	// file is supplied.
	UpdateDeposit(ctx context.Context, depositID string, req dto.UpdateDepositRequest, receipt *dto.ReceiptUpload) (*domain.Deposit, error)

	// DeleteDeposit removes a deposit. Posted income is never reversed.
	DeleteDeposit(ctx context.Context, depositID string) error
}

// DepositSvcFacade combines all deposit-related service interfaces
type DepositSvcFacade interface {
	DepositReaderSvc
	DepositWriterSvc
}
