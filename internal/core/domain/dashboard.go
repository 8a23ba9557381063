package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate read model behind the dashboard screen.
// It is computed from the ledgers and cached; GeneratedAt records when the
// aggregation ran.
type DashboardStats struct {
	TotalCustomers      int64           `json:"totalCustomers"`
	MonthlyIncome       decimal.Decimal `json:"monthlyIncome"`
	ReceivablesTotal    decimal.Decimal `json:"receivablesTotal"`
	ActiveDepositsTotal decimal.Decimal `json:"activeDepositsTotal"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}
