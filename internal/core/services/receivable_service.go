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

const dueDateLayout = "2006-01-02"

// receivableService provides the receivable ledger operations, including the
// payment recorder.
type receivableService struct {
	receivableRepo portsrepo.ReceivableRepositoryWithTx
	incomeRepo     portsrepo.IncomeWriter
	customerSvc    portssvc.CustomerSvcFacade
	activitySvc    portssvc.ActivityRecorderSvc
	attachments    portsrepo.AttachmentStore
	publisher      events.Publisher
}

// NewReceivableService creates a new ReceivableService.
func NewReceivableService(
	receivableRepo portsrepo.ReceivableRepositoryWithTx,
	incomeRepo portsrepo.IncomeWriter,
	customerSvc portssvc.CustomerSvcFacade,
	activitySvc portssvc.ActivityRecorderSvc,
	attachments portsrepo.AttachmentStore,
	publisher events.Publisher,
) portssvc.ReceivableSvcFacade {
	return &receivableService{
		receivableRepo: receivableRepo,
		incomeRepo:     incomeRepo,
		customerSvc:    customerSvc,
		activitySvc:    activitySvc,
		attachments:    attachments,
		publisher:      publisher,
	}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// CreateReceivable records a new receivable. The stored status comes from the
// derivation rules; an explicit cancelled status is honored as a pin.
func (s *receivableService) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerSvc.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	paidAmount := decimal.Zero
	if req.PaidAmount != nil {
		paidAmount = *req.PaidAmount
	}
	if paidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paidAmount must not be negative", apperrors.ErrValidation)
	}
	if paidAmount.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("%w: paidAmount must not exceed amount", apperrors.ErrValidation)
	}

	dueDate, err := time.ParseInLocation(dueDateLayout, req.DueDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be in %s form", apperrors.ErrValidation, dueDateLayout)
	}

	now := time.Now().UTC()
	status := domain.DeriveReceivableStatus(domain.ReceivableStatusPending, req.Amount, paidAmount, dueDate, now)
	if req.Status == string(domain.ReceivableStatusCancelled) {
		status = domain.ReceivableStatusCancelled
	}

	receivable := domain.Receivable{
		ReceivableID: uuid.NewString(),
		CustomerID:   req.CustomerID,
		Amount:       req.Amount,
		PaidAmount:   paidAmount,
		DueDate:      dueDate,
		Description:  req.Description,
		Notes:        req.Notes,
		Status:       status,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.receivableRepo.SaveReceivable(ctx, receivable); err != nil {
		return nil, err
	}

	logger.Info("Receivable created",
		slog.String("receivable_id", receivable.ReceivableID),
		slog.String("customer_id", receivable.CustomerID),
		slog.String("amount", receivable.Amount.String()),
	)
	s.activitySvc.Record(ctx, domain.ActivityReceivableAdded,
		fmt.Sprintf("Receivable of %s recorded for %s", receivable.Amount.String(), customer.Name))
	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventReceivableCreated, ReferenceID: receivable.ReceivableID})

	return &receivable, nil
}

// UpdateReceivable updates receivable details and re-derives its status.
// Pinning the status to cancelled survives later derivations. The read and
// write share one transaction holding the receivable's row lock, so an update
// cannot overwrite a payment that commits between them.
func (s *receivableService) UpdateReceivable(ctx context.Context, receivableID string, req dto.UpdateReceivableRequest) (*domain.Receivable, error) {
	tx, err := s.receivableRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.receivableRepo.Rollback(ctx, tx)
		}
	}()

	receivable, err := s.receivableRepo.FindReceivableForUpdate(ctx, tx, receivableID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		receivable.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		if req.PaidAmount.IsNegative() {
			return nil, fmt.Errorf("%w: paidAmount must not be negative", apperrors.ErrValidation)
		}
		receivable.PaidAmount = *req.PaidAmount
	}
	if receivable.PaidAmount.GreaterThan(receivable.Amount) {
		return nil, fmt.Errorf("%w: paidAmount must not exceed amount", apperrors.ErrValidation)
	}
	if req.DueDate != nil {
		dueDate, err := time.ParseInLocation(dueDateLayout, *req.DueDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: dueDate must be in %s form", apperrors.ErrValidation, dueDateLayout)
		}
		receivable.DueDate = dueDate
	}
	if req.Description != nil {
		receivable.Description = *req.Description
	}
	if req.Notes != nil {
		receivable.Notes = *req.Notes
	}

	now := time.Now().UTC()
	current := receivable.Status
	if req.Status != nil {
		current = domain.ReceivableStatus(*req.Status)
	}
	receivable.Status = domain.DeriveReceivableStatus(current, receivable.Amount, receivable.PaidAmount, receivable.DueDate, now)
	receivable.LastUpdatedAt = now

	if err := s.receivableRepo.UpdateReceivableInTx(ctx, tx, *receivable); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventReceivableUpdated, ReferenceID: receivable.ReceivableID})
	return receivable, nil
}

// DeleteReceivable removes a receivable permanently.
func (s *receivableService) DeleteReceivable(ctx context.Context, receivableID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return err
	}

	if err := s.receivableRepo.DeleteReceivable(ctx, receivableID); err != nil {
		return err
	}

	logger.Info("Receivable deleted", slog.String("receivable_id", receivableID))
	s.activitySvc.Record(ctx, domain.ActivityReceivableDeleted,
		fmt.Sprintf("Receivable of %s deleted", receivable.Amount.String()))
	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventReceivableDeleted, ReferenceID: receivableID})
	return nil
}

// ApplyPayment records a payment against a receivable. The whole mutation is
// one database transaction holding a row lock on the receivable, so
// concurrent payments serialize and the paid amount can never exceed the
// owed amount. The income entry shares the transaction.
func (s *receivableService) ApplyPayment(ctx context.Context, receivableID string, req dto.RecordPaymentRequest, receipt *dto.ReceiptUpload, idempotencyKey string) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := parsePositiveAmountField("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := s.receivableRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	receiptKey := ""
	defer func() {
		if !committed {
			_ = s.receivableRepo.Rollback(ctx, tx)
			discardReceipt(ctx, s.attachments, receiptKey, logger)
		}
	}()

	receivable, err := s.receivableRepo.FindReceivableForUpdate(ctx, tx, receivableID)
	if err != nil {
		return nil, err
	}

	if receivable.IsClosed() {
		return nil, fmt.Errorf("%w: receivable is %s and accepts no further payments", apperrors.ErrConflict, receivable.Status)
	}

	newPaid := receivable.PaidAmount.Add(amount)
	if newPaid.GreaterThan(receivable.Amount) {
		return nil, fmt.Errorf("%w: payment exceeds remaining balance", apperrors.ErrValidation)
	}

	if receipt != nil {
		receiptKey, err = storeReceipt(ctx, s.attachments, receipt)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	newStatus := domain.DeriveReceivableStatus(receivable.Status, receivable.Amount, newPaid, receivable.DueDate, now)

	if err := s.receivableRepo.ApplyPaymentInTx(ctx, tx, receivableID, newPaid, newStatus, now); err != nil {
		return nil, err
	}

	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		ReceivableID:   receivableID,
		Amount:         amount,
		ReceiptKey:     receiptKey,
		IdempotencyKey: idempotencyKey,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.receivableRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
		return nil, err
	}

	income := domain.IncomeEntry{
		IncomeID:    uuid.NewString(),
		Amount:      amount,
		Source:      domain.IncomeSourceReceivablePayment,
		ReferenceID: receivableID,
		Description: fmt.Sprintf("Payment on receivable: %s", receivable.Description),
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.incomeRepo.SaveIncomeEntryInTx(ctx, tx, income); err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	receivable.PaidAmount = newPaid
	receivable.Status = newStatus
	receivable.LastUpdatedAt = now

	logger.Info("Payment applied",
		slog.String("receivable_id", receivableID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", amount.String()),
		slog.String("status", string(newStatus)),
	)
	s.activitySvc.Record(ctx, domain.ActivityReceivablePaid,
		fmt.Sprintf("Payment of %s received on receivable %s", amount.String(), receivable.Description))
	s.publisher.Publish(ctx, domain.Event{Kind: domain.EventPaymentApplied, ReferenceID: receivableID})

	return receivable, nil
}

// GetReceivableByID retrieves a receivable, re-deriving overdue display state
// for rows whose due date passed while untouched.
func (s *receivableService) GetReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	receivable.Status = domain.DeriveReceivableStatus(receivable.Status, receivable.Amount, receivable.PaidAmount, receivable.DueDate, time.Now().UTC())
	return receivable, nil
}

// ListReceivables retrieves a paginated list of receivables, newest first.
func (s *receivableService) ListReceivables(ctx context.Context, params dto.ListReceivablesParams) (*dto.ListReceivablesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var status *domain.ReceivableStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.ReceivableStatus(*params.Status)
		status = &st
	}

	receivables, nextToken, err := s.receivableRepo.ListReceivables(ctx, limit, params.NextToken, params.CustomerID, status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range receivables {
		receivables[i].Status = domain.DeriveReceivableStatus(receivables[i].Status, receivables[i].Amount, receivables[i].PaidAmount, receivables[i].DueDate, now)
	}

	return &dto.ListReceivablesResponse{
		Receivables: dto.ToListReceivableResponse(receivables),
		NextToken:   nextToken,
	}, nil
}

// ListPayments retrieves the payment history of a receivable.
func (s *receivableService) ListPayments(ctx context.Context, receivableID string) (*dto.ListPaymentsResponse, error) {
	if _, err := s.receivableRepo.FindReceivableByID(ctx, receivableID); err != nil {
		return nil, err
	}
	payments, err := s.receivableRepo.ListPaymentsByReceivable(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	return &dto.ListPaymentsResponse{Payments: dto.ToListPaymentResponse(payments)}, nil
}
