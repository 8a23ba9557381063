package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/core/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

type ReceivableServiceTestSuite struct {
	suite.Suite
	mockReceivableRepo *MockReceivableRepository
	mockIncomeRepo     *MockIncomeRepository
	mockCustomerRepo   *MockCustomerRepository
	mockActivityRepo   *MockActivityRepository
	mockAttachments    *MockAttachmentStore
	mockPublisher      *MockPublisher
	service            portssvc.ReceivableSvcFacade
	customer           *domain.Customer
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockIncomeRepo = new(MockIncomeRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockAttachments = new(MockAttachmentStore)
	suite.mockPublisher = new(MockPublisher)

	customerSvc := services.NewCustomerService(suite.mockCustomerRepo)
	activitySvc := services.NewActivityService(suite.mockActivityRepo)
	suite.service = services.NewReceivableService(
		suite.mockReceivableRepo,
		suite.mockIncomeRepo,
		customerSvc,
		activitySvc,
		suite.mockAttachments,
		suite.mockPublisher,
	)

	suite.customer = &domain.Customer{CustomerID: uuid.NewString(), Name: "Sara"}
}

func (suite *ReceivableServiceTestSuite) openReceivable(amount, paid int64) *domain.Receivable {
	return &domain.Receivable{
		ReceivableID: uuid.NewString(),
		CustomerID:   suite.customer.CustomerID,
		Amount:       decimal.NewFromInt(amount),
		PaidAmount:   decimal.NewFromInt(paid),
		DueDate:      time.Now().UTC().AddDate(0, 0, 7),
		Description:  "Workshop balance",
		Status:       domain.ReceivableStatusPending,
	}
}

// --- CreateReceivable ---

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_Success() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockReceivableRepo.On("SaveReceivable", ctx, mock.AnythingOfType("domain.Receivable")).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

	dueDate := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	receivable, err := suite.service.CreateReceivable(ctx, dto.CreateReceivableRequest{
		CustomerID:  suite.customer.CustomerID,
		Amount:      decimal.NewFromInt(750),
		DueDate:     dueDate,
		Description: "Invoice balance",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(receivable)
	suite.NotEmpty(receivable.ReceivableID)
	suite.Equal(domain.ReceivableStatusPending, receivable.Status)
	suite.True(receivable.PaidAmount.IsZero())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_FullyPaidAtCreation() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockReceivableRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.Status == domain.ReceivableStatusPaid
	})).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

	paid := decimal.NewFromInt(750)
	_, err := suite.service.CreateReceivable(ctx, dto.CreateReceivableRequest{
		CustomerID:  suite.customer.CustomerID,
		Amount:      decimal.NewFromInt(750),
		PaidAmount:  &paid,
		DueDate:     time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02"),
		Description: "Settled on the spot",
	})

	suite.Require().NoError(err)
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCreateReceivable_PaidExceedsAmount() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()

	paid := decimal.NewFromInt(800)
	receivable, err := suite.service.CreateReceivable(ctx, dto.CreateReceivableRequest{
		CustomerID:  suite.customer.CustomerID,
		Amount:      decimal.NewFromInt(750),
		PaidAmount:  &paid,
		DueDate:     time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02"),
		Description: "Bad input",
	})

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "SaveReceivable", mock.Anything, mock.Anything)
}

// --- ApplyPayment ---

func (suite *ReceivableServiceTestSuite) TestApplyPayment_PartialKeepsPending() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 100)

	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("ApplyPaymentInTx", ctx, mock.Anything, receivable.ReceivableID,
		decimal.NewFromInt(250), domain.ReceivableStatusPending, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReceivableRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Amount.Equal(decimal.NewFromInt(150)) && p.ReceivableID == receivable.ReceivableID
	})).Return(nil).Once()
	suite.mockIncomeRepo.On("SaveIncomeEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.IncomeEntry) bool {
		return e.Source == domain.IncomeSourceReceivablePayment && e.Amount.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()
	suite.mockReceivableRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Kind == domain.EventPaymentApplied
	})).Return().Once()

	updated, err := suite.service.ApplyPayment(ctx, receivable.ReceivableID, dto.RecordPaymentRequest{Amount: "150"}, nil, "")

	suite.Require().NoError(err)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(250)))
	suite.Equal(domain.ReceivableStatusPending, updated.Status)
	suite.mockReceivableRepo.AssertExpectations(suite.T())
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestApplyPayment_ExactRemainingMarksPaid() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 300)

	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("ApplyPaymentInTx", ctx, mock.Anything, receivable.ReceivableID,
		decimal.NewFromInt(500), domain.ReceivableStatusPaid, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReceivableRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockIncomeRepo.On("SaveIncomeEntryInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockReceivableRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

	updated, err := suite.service.ApplyPayment(ctx, receivable.ReceivableID, dto.RecordPaymentRequest{Amount: "200"}, nil, "")

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivableStatusPaid, updated.Status)
	suite.True(updated.Remaining().IsZero())
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestApplyPayment_OverpaymentRejected() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 400)

	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ApplyPayment(ctx, receivable.ReceivableID, dto.RecordPaymentRequest{Amount: "100.01"}, nil, "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "payment exceeds remaining balance")
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "ApplyPaymentInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockIncomeRepo.AssertNotCalled(suite.T(), "SaveIncomeEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestApplyPayment_ClosedReceivableConflicts() {
	ctx := context.Background()
	for _, status := range []domain.ReceivableStatus{domain.ReceivableStatusPaid, domain.ReceivableStatusCancelled} {
		receivable := suite.openReceivable(500, 500)
		receivable.Status = status

		suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
		suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
		suite.mockReceivableRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

		updated, err := suite.service.ApplyPayment(ctx, receivable.ReceivableID, dto.RecordPaymentRequest{Amount: "50"}, nil, "")

		suite.Require().Error(err, "status %s", status)
		suite.Nil(updated)
		suite.ErrorIs(err, apperrors.ErrConflict)
	}
}

func (suite *ReceivableServiceTestSuite) TestApplyPayment_UnknownReceivable() {
	ctx := context.Background()
	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReceivableRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ApplyPayment(ctx, "missing", dto.RecordPaymentRequest{Amount: "50"}, nil, "")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReceivableServiceTestSuite) TestApplyPayment_DuplicateIdempotencyKey() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 0)

	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("ApplyPaymentInTx", ctx, mock.Anything, receivable.ReceivableID,
		mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockReceivableRepo.On("SavePaymentInTx", ctx, mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.IdempotencyKey == "retry-1"
	})).Return(fmt.Errorf("%w: payment already recorded for idempotency key", apperrors.ErrDuplicate)).Once()
	suite.mockReceivableRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.ApplyPayment(ctx, receivable.ReceivableID, dto.RecordPaymentRequest{Amount: "50"}, nil, "retry-1")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- UpdateReceivable / DeleteReceivable ---

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_PaidCannotExceedAmount() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 100)
	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	paid := decimal.NewFromInt(600)
	updated, err := suite.service.UpdateReceivable(ctx, receivable.ReceivableID, dto.UpdateReceivableRequest{PaidAmount: &paid})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "UpdateReceivableInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_CancelledIsSticky() {
	ctx := context.Background()
	receivable := suite.openReceivable(500, 100)
	receivable.Status = domain.ReceivableStatusCancelled
	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.Status == domain.ReceivableStatusCancelled
	})).Return(nil).Once()
	suite.mockReceivableRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

	notes := "customer walked away"
	updated, err := suite.service.UpdateReceivable(ctx, receivable.ReceivableID, dto.UpdateReceivableRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivableStatusCancelled, updated.Status)
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestUpdateReceivable_ReadsUnderRowLock() {
	ctx := context.Background()
	// The locked read sees the row as a just-committed payment left it: fully
	// paid. A notes-only update must carry those balances through untouched
	// instead of writing back an earlier snapshot.
	receivable := suite.openReceivable(500, 500)
	receivable.Status = domain.ReceivableStatusPaid

	suite.mockReceivableRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableForUpdate", ctx, mock.Anything, receivable.ReceivableID).Return(receivable, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.PaidAmount.Equal(decimal.NewFromInt(500)) &&
			r.Status == domain.ReceivableStatusPaid &&
			r.Notes == "paid in cash"
	})).Return(nil).Once()
	suite.mockReceivableRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.Anything).Return().Once()

	notes := "paid in cash"
	updated, err := suite.service.UpdateReceivable(ctx, receivable.ReceivableID, dto.UpdateReceivableRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.ReceivableStatusPaid, updated.Status)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "FindReceivableByID", mock.Anything, mock.Anything)
	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestDeleteReceivable_NotFoundHasNoSideEffects() {
	ctx := context.Background()
	suite.mockReceivableRepo.On("FindReceivableByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteReceivable(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "DeleteReceivable", mock.Anything, mock.Anything)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

// --- Display derivation ---

func (suite *ReceivableServiceTestSuite) TestListReceivables_RederivesOverdueForDisplay() {
	ctx := context.Background()
	stale := *suite.openReceivable(500, 0)
	stale.DueDate = time.Now().UTC().AddDate(0, 0, -3)
	stale.Status = domain.ReceivableStatusPending // stored before the due date passed

	suite.mockReceivableRepo.On("ListReceivables", ctx, 20, (*string)(nil), (*string)(nil), (*domain.ReceivableStatus)(nil)).
		Return([]domain.Receivable{stale}, nil, nil).Once()

	resp, err := suite.service.ListReceivables(ctx, dto.ListReceivablesParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Receivables, 1)
	suite.Equal(string(domain.ReceivableStatusOverdue), resp.Receivables[0].Status)
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
