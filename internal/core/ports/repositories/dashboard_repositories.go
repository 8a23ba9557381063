package repositories

import (
	"context"
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardReader defines the aggregate queries behind the dashboard.
type DashboardReader interface {
	// CountCustomers returns the number of customers in the directory.
	CountCustomers(ctx context.Context) (int64, error)

	// SumIncomeBetween returns the total of income entries created in [from, to).
	SumIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// SumOutstandingReceivables returns the total remaining balance across
	// receivables that are still open.
	SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error)

	// SumActiveDeposits returns the total amount held across active deposits.
	SumActiveDeposits(ctx context.Context) (decimal.Decimal, error)
}

// DashboardStatsCache caches the computed dashboard aggregate between
// mutations. Implementations return (nil, nil) on a cache miss.
type DashboardStatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
	Set(ctx context.Context, stats domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}
