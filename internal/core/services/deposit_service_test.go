package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/core/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

type DepositServiceTestSuite struct {
	suite.Suite
	mockDepositRepo    *MockDepositRepository
	mockReceivableRepo *MockReceivableRepository
	mockIncomeRepo     *MockIncomeRepository
	mockCustomerRepo   *MockCustomerRepository
	mockActivityRepo   *MockActivityRepository
	mockAttachments    *MockAttachmentStore
	mockPublisher      *MockPublisher
	service            portssvc.DepositSvcFacade
	customer           *domain.Customer
}

func (suite *DepositServiceTestSuite) SetupTest() {
	suite.mockDepositRepo = new(MockDepositRepository)
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockIncomeRepo = new(MockIncomeRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.mockAttachments = new(MockAttachmentStore)
	suite.mockPublisher = new(MockPublisher)

	customerSvc := services.NewCustomerService(suite.mockCustomerRepo)
	activitySvc := services.NewActivityService(suite.mockActivityRepo)
	suite.service = services.NewDepositService(
		suite.mockDepositRepo,
		suite.mockReceivableRepo,
		suite.mockIncomeRepo,
		customerSvc,
		activitySvc,
		suite.mockAttachments,
		suite.mockPublisher,
		30,
	)

	suite.customer = &domain.Customer{CustomerID: uuid.NewString(), Name: "Ahmed"}
}

func (suite *DepositServiceTestSuite) expectCommitSideEffects() {
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.AnythingOfType("domain.Activity")).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.AnythingOfType("domain.Event")).Return().Once()
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_FullPaymentPostsIncome() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockDepositRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepositRepo.On("SaveDepositInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Deposit")).Return(nil).Once()
	suite.mockIncomeRepo.On("SaveIncomeEntryInTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.IncomeEntry) bool {
		return e.Source == domain.IncomeSourceDeposit && e.Amount.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()
	suite.mockDepositRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.expectCommitSideEffects()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID: suite.customer.CustomerID,
		Amount:     "500",
	}, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(deposit)
	suite.True(deposit.Amount.Equal(decimal.NewFromInt(500)))
	suite.False(deposit.IsPartial())
	suite.Equal(domain.DepositStatusActive, deposit.Status)

	suite.mockDepositRepo.AssertExpectations(suite.T())
	suite.mockIncomeRepo.AssertExpectations(suite.T())
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "SaveReceivableInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_PartialCreatesRemainderReceivable() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockDepositRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepositRepo.On("SaveDepositInTx", ctx, mock.Anything, mock.AnythingOfType("domain.Deposit")).Return(nil).Once()
	suite.mockReceivableRepo.On("SaveReceivableInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.Amount.Equal(decimal.NewFromInt(200)) &&
			r.PaidAmount.IsZero() &&
			r.Status == domain.ReceivableStatusPending &&
			r.CustomerID == suite.customer.CustomerID
	})).Return(nil).Once()
	suite.mockDepositRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.expectCommitSideEffects()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID:  suite.customer.CustomerID,
		Amount:      "300",
		TotalAmount: "500",
	}, nil)

	suite.Require().NoError(err)
	suite.True(deposit.IsPartial())
	suite.True(deposit.Remainder().Equal(decimal.NewFromInt(200)))

	suite.mockReceivableRepo.AssertExpectations(suite.T())
	suite.mockIncomeRepo.AssertNotCalled(suite.T(), "SaveIncomeEntryInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_UnknownCustomer() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID: "missing",
		Amount:     "500",
	}, nil)

	suite.Require().Error(err)
	suite.Nil(deposit)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_NonPositiveAmount() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil)

	for _, amount := range []string{"0", "-10", "abc"} {
		deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
			CustomerID: suite.customer.CustomerID,
			Amount:     amount,
		}, nil)
		suite.Require().Error(err, "amount %q", amount)
		suite.Nil(deposit)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_TotalBelowAmount() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID:  suite.customer.CustomerID,
		Amount:      "500",
		TotalAmount: "300",
	}, nil)

	suite.Require().Error(err)
	suite.Nil(deposit)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_ReceiptStoreFailureAborts() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockAttachments.On("Store", ctx, mock.AnythingOfType("string"), "image/png", int64(4), mock.Anything).
		Return(apperrors.ErrDependency).Once()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID: suite.customer.CustomerID,
		Amount:     "500",
	}, &dto.ReceiptUpload{
		Filename:    "receipt.png",
		ContentType: "image/png",
		Size:        4,
		Content:     strings.NewReader("data"),
	})

	suite.Require().Error(err)
	suite.Nil(deposit)
	suite.ErrorIs(err, apperrors.ErrDependency)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_SaveFailureRollsBack() {
	ctx := context.Background()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(suite.customer, nil).Once()
	suite.mockDepositRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepositRepo.On("SaveDepositInTx", ctx, mock.Anything, mock.Anything).Return(assert.AnError).Once()
	suite.mockDepositRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	deposit, err := suite.service.CreateDeposit(ctx, dto.CreateDepositRequest{
		CustomerID: suite.customer.CustomerID,
		Amount:     "500",
	}, nil)

	suite.Require().Error(err)
	suite.Nil(deposit)
	suite.mockDepositRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestUpdateDeposit_ReadsUnderRowLock() {
	ctx := context.Background()
	// The locked read sees the row as a concurrent writer left it. A
	// description-only update must write those values back, not an earlier
	// snapshot.
	deposit := &domain.Deposit{
		DepositID:  uuid.NewString(),
		CustomerID: suite.customer.CustomerID,
		Amount:     decimal.NewFromInt(300),
		Status:     domain.DepositStatusApplied,
	}

	suite.mockDepositRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepositRepo.On("FindDepositForUpdate", ctx, mock.Anything, deposit.DepositID).Return(deposit, nil).Once()
	suite.mockDepositRepo.On("UpdateDepositInTx", ctx, mock.Anything, mock.MatchedBy(func(d domain.Deposit) bool {
		return d.Status == domain.DepositStatusApplied &&
			d.Amount.Equal(decimal.NewFromInt(300)) &&
			d.Description == "season booking"
	})).Return(nil).Once()
	suite.mockDepositRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Kind == domain.EventDepositUpdated
	})).Return().Once()

	description := "season booking"
	updated, err := suite.service.UpdateDeposit(ctx, deposit.DepositID, dto.UpdateDepositRequest{Description: &description}, nil)

	suite.Require().NoError(err)
	suite.Equal(domain.DepositStatusApplied, updated.Status)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "FindDepositByID", mock.Anything, mock.Anything)
	suite.mockDepositRepo.AssertExpectations(suite.T())
}

func (suite *DepositServiceTestSuite) TestUpdateDeposit_TotalBelowAmountRollsBack() {
	ctx := context.Background()
	deposit := &domain.Deposit{
		DepositID:  uuid.NewString(),
		CustomerID: suite.customer.CustomerID,
		Amount:     decimal.NewFromInt(300),
		Status:     domain.DepositStatusActive,
	}

	suite.mockDepositRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockDepositRepo.On("FindDepositForUpdate", ctx, mock.Anything, deposit.DepositID).Return(deposit, nil).Once()
	suite.mockDepositRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	total := "200"
	updated, err := suite.service.UpdateDeposit(ctx, deposit.DepositID, dto.UpdateDepositRequest{TotalAmount: &total}, nil)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "UpdateDepositInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestDeleteDeposit_NotFound() {
	ctx := context.Background()
	suite.mockDepositRepo.On("FindDepositByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteDeposit(ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "DeleteDeposit", mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func TestDepositServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepositServiceTestSuite))
}
