package services_test

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
)

// --- Shared repository mocks for the service test suites ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	token, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Customer), token, args.Error(2)
}

type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDepositRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDepositRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDepositRepository) SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	args := m.Called(ctx, tx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) FindDepositForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, tx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) UpdateDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	args := m.Called(ctx, tx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) DeleteDeposit(ctx context.Context, depositID string) error {
	args := m.Called(ctx, depositID)
	return args.Error(0)
}

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ListDeposits(ctx context.Context, limit int, nextToken *string, customerID *string) ([]domain.Deposit, *string, error) {
	args := m.Called(ctx, limit, nextToken, customerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	token, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Deposit), token, args.Error(2)
}

type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockReceivableRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReceivableRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, limit int, nextToken *string, customerID *string, status *domain.ReceivableStatus) ([]domain.Receivable, *string, error) {
	args := m.Called(ctx, limit, nextToken, customerID, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	token, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Receivable), token, args.Error(2)
}

func (m *MockReceivableRepository) ListPaymentsByReceivable(ctx context.Context, receivableID string) ([]domain.Payment, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) SaveReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error {
	args := m.Called(ctx, tx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) UpdateReceivableInTx(ctx context.Context, tx pgx.Tx, receivable domain.Receivable) error {
	args := m.Called(ctx, tx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) DeleteReceivable(ctx context.Context, receivableID string) error {
	args := m.Called(ctx, receivableID)
	return args.Error(0)
}

func (m *MockReceivableRepository) FindReceivableForUpdate(ctx context.Context, tx pgx.Tx, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, tx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ApplyPaymentInTx(ctx context.Context, tx pgx.Tx, receivableID string, paidAmount decimal.Decimal, status domain.ReceivableStatus, updatedAt time.Time) error {
	args := m.Called(ctx, tx, receivableID, paidAmount, status, updatedAt)
	return args.Error(0)
}

func (m *MockReceivableRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) SaveIncomeEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockIncomeRepository) ListIncomeEntries(ctx context.Context, limit int, nextToken *string) ([]domain.IncomeEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	token, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.IncomeEntry), token, args.Error(2)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Store(ctx context.Context, key string, contentType string, size int64, content io.Reader) error {
	args := m.Called(ctx, key, contentType, size, content)
	return args.Error(0)
}

func (m *MockAttachmentStore) Retrieve(ctx context.Context, key string) (*portsrepo.Attachment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.Attachment), args.Error(1)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

type MockDashboardReader struct {
	mock.Mock
}

func (m *MockDashboardReader) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardReader) SumIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDashboardReader) SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDashboardReader) SumActiveDeposits(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, stats domain.DashboardStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
