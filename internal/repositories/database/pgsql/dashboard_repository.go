package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDashboardRepository struct {
	pool *pgxpool.Pool
}

// newPgxDashboardRepository creates the aggregate-query repository behind the dashboard.
func newPgxDashboardRepository(pool *pgxpool.Pool) portsrepo.DashboardReader {
	return &PgxDashboardRepository{pool: pool}
}

var _ portsrepo.DashboardReader = (*PgxDashboardRepository)(nil)

// CountCustomers returns the number of customers in the directory.
func (r *PgxDashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// SumIncomeBetween returns the total of income entries created in [from, to).
func (r *PgxDashboardRepository) SumIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM income_entries WHERE created_at >= $1 AND created_at < $2;`
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income entries: %w", err)
	}
	return total, nil
}

// SumOutstandingReceivables returns the total remaining balance across
// receivables that still accept payments.
func (r *PgxDashboardRepository) SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount - paid_amount), 0)
		FROM receivables
		WHERE status NOT IN ('paid', 'cancelled');
	`
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding receivables: %w", err)
	}
	return total, nil
}

// SumActiveDeposits returns the total amount held across active deposits.
func (r *PgxDashboardRepository) SumActiveDeposits(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM deposits WHERE status = 'active';`
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum active deposits: %w", err)
	}
	return total, nil
}
