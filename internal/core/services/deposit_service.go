package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/core/events"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
)

// depositService provides the deposit ledger operations.
type depositService struct {
	depositRepo       portsrepo.DepositRepositoryWithTx
	receivableRepo    portsrepo.ReceivableRepositoryFacade
	incomeRepo        portsrepo.IncomeWriter
	customerSvc       portssvc.CustomerSvcFacade
	activitySvc       portssvc.ActivityRecorderSvc
	attachments       portsrepo.AttachmentStore
	publisher         events.Publisher
	remainderDueDays  int
}

// NewDepositService creates a new DepositService. remainderDueDays is the
// grace period granted to the receivable a partial deposit creates.
func NewDepositService(
	depositRepo portsrepo.DepositRepositoryWithTx,
	receivableRepo portsrepo.ReceivableRepositoryFacade,
	incomeRepo portsrepo.IncomeWriter,
	customerSvc portssvc.CustomerSvcFacade,
	activitySvc portssvc.ActivityRecorderSvc,
	attachments portsrepo.AttachmentStore,
	publisher events.Publisher,
	remainderDueDays int,
) portssvc.DepositSvcFacade {
	return &depositService{
		depositRepo:      depositRepo,
		receivableRepo:   receivableRepo,
		incomeRepo:       incomeRepo,
		customerSvc:      customerSvc,
		activitySvc:      activitySvc,
		attachments:      attachments,
		publisher:        publisher,
		remainderDueDays: remainderDueDays,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

// CreateDeposit records a new deposit. When the agreed total exceeds the
// amount received, the remainder becomes a receivable in the same database
// transaction; a full deposit posts income instead.
func (s *depositService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, receipt *dto.ReceiptUpload) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, err
	}

	amount, err := parsePositiveAmountField("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	if req.TotalAmount != "" {
		totalAmount, err = parsePositiveAmountField("totalAmount", req.TotalAmount)
		if err != nil {
			return nil, err
		}
		if totalAmount.LessThan(amount) {
			return nil, fmt.Errorf("%w: totalAmount must not be less than amount", apperrors.ErrValidation)
		}
	}

	status := domain.DepositStatusActive
	if req.Status != "" {
		status = domain.DepositStatus(req.Status)
	}

	now := time.Now().UTC()
	deposit := domain.Deposit{
		DepositID:   uuid.NewString(),
		CustomerID:  req.CustomerID,
		Amount:      amount,
		TotalAmount: totalAmount,
		Description: req.Description,
		Status:      status,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if receipt != nil {
		key, err := storeReceipt(ctx, s.attachments, receipt)
		if err != nil {
			return nil, err
		}
		deposit.ReceiptKey = key
	}

	tx, err := s.depositRepo.Begin(ctx)
	if err != nil {
		discardReceipt(ctx, s.attachments, deposit.ReceiptKey, logger)
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.depositRepo.Rollback(ctx, tx)
			discardReceipt(ctx, s.attachments, deposit.ReceiptKey, logger)
		}
	}()

	if err := s.depositRepo.SaveDepositInTx(ctx, tx, deposit); err != nil {
		return nil, err
	}

	if deposit.IsPartial() {
		remainder := domain.Receivable{
			ReceivableID: uuid.NewString(),
			CustomerID:   deposit.CustomerID,
			Amount:       deposit.Remainder(),
			PaidAmount:   decimal.Zero,
			DueDate:      now.AddDate(0, 0, s.remainderDueDays),
			Description:  fmt.Sprintf("Remaining balance after deposit from %s", customer.Name),
			Status:       domain.ReceivableStatusPending,
			AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.receivableRepo.SaveReceivableInTx(ctx, tx, remainder); err != nil {
			return nil, err
		}
	} else {
		income := domain.IncomeEntry{
			IncomeID:    uuid.NewString(),
			Amount:      deposit.Amount,
			Source:      domain.IncomeSourceDeposit,
			ReferenceID: deposit.DepositID,
			Description: fmt.Sprintf("Deposit from %s", customer.Name),
			AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.incomeRepo.SaveIncomeEntryInTx(ctx, tx, income); err != nil {
			return nil, err
		}
	}

	if err := s.depositRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("Deposit created",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("customer_id", deposit.CustomerID),
		slog.String("amount", deposit.Amount.String()),
	)
	s.activitySvc.Record(ctx, domain.ActivityDepositAdded,
		fmt.Sprintf("Deposit of %s received from %s", deposit.Amount.String(), customer.Name))
	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventDepositCreated, ReferenceID: deposit.DepositID})

	return &deposit, nil
}

// UpdateDeposit updates deposit details, replacing the stored receipt when a
// new file is supplied. The read and write share one transaction holding the
// deposit's row lock, so concurrent updates serialize instead of overwriting
// each other.
func (s *depositService) UpdateDeposit(ctx context.Context, depositID string, req dto.UpdateDepositRequest, receipt *dto.ReceiptUpload) (*domain.Deposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.depositRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	newReceiptKey := ""
	defer func() {
		if !committed {
			_ = s.depositRepo.Rollback(ctx, tx)
			discardReceipt(ctx, s.attachments, newReceiptKey, logger)
		}
	}()

	deposit, err := s.depositRepo.FindDepositForUpdate(ctx, tx, depositID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		amount, err := parsePositiveAmountField("amount", *req.Amount)
		if err != nil {
			return nil, err
		}
		deposit.Amount = amount
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount == "" {
			deposit.TotalAmount = decimal.Zero
		} else {
			totalAmount, err := parsePositiveAmountField("totalAmount", *req.TotalAmount)
			if err != nil {
				return nil, err
			}
			deposit.TotalAmount = totalAmount
		}
	}
	if deposit.TotalAmount.IsPositive() && deposit.TotalAmount.LessThan(deposit.Amount) {
		return nil, fmt.Errorf("%w: totalAmount must not be less than amount", apperrors.ErrValidation)
	}
	if req.Description != nil {
		deposit.Description = *req.Description
	}
	if req.Status != nil {
		deposit.Status = domain.DepositStatus(*req.Status)
	}

	oldReceiptKey := ""
	if receipt != nil {
		newReceiptKey, err = storeReceipt(ctx, s.attachments, receipt)
		if err != nil {
			return nil, err
		}
		oldReceiptKey = deposit.ReceiptKey
		deposit.ReceiptKey = newReceiptKey
	}

	deposit.LastUpdatedAt = time.Now().UTC()
	if err := s.depositRepo.UpdateDepositInTx(ctx, tx, *deposit); err != nil {
		return nil, err
	}

	if err := s.depositRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true
	discardReceipt(ctx, s.attachments, oldReceiptKey, logger)

	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventDepositUpdated, ReferenceID: deposit.DepositID})
	return deposit, nil
}

// DeleteDeposit removes a deposit permanently. Income posted when the deposit
// was taken stays on the books.
func (s *depositService) DeleteDeposit(ctx context.Context, depositID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return err
	}

	if err := s.depositRepo.DeleteDeposit(ctx, depositID); err != nil {
		return err
	}
	discardReceipt(ctx, s.attachments, deposit.ReceiptKey, logger)

	logger.Info("Deposit deleted", slog.String("deposit_id", depositID))
	s.activitySvc.Record(ctx, domain.ActivityDepositDeleted,
		fmt.Sprintf("Deposit of %s deleted", deposit.Amount.String()))
	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventDepositDeleted, ReferenceID: depositID})
	return nil
}

// GetDepositByID retrieves a specific deposit by its ID.
func (s *depositService) GetDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	return s.depositRepo.FindDepositByID(ctx, depositID)
}

// ListDeposits retrieves a paginated list of deposits, newest first.
func (s *depositService) ListDeposits(ctx context.Context, params dto.ListDepositsParams) (*dto.ListDepositsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	deposits, nextToken, err := s.depositRepo.ListDeposits(ctx, limit, params.NextToken, params.CustomerID)
	if err != nil {
		return nil, err
	}
	return &dto.ListDepositsResponse{
		Deposits:  dto.ToListDepositResponse(deposits),
		NextToken: nextToken,
	}, nil
}
