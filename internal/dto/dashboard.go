package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse defines the aggregate numbers the dashboard shows.
type DashboardStatsResponse struct {
	TotalCustomers      int64           `json:"totalCustomers"`
	MonthlyIncome       decimal.Decimal `json:"monthlyIncome"`
	ReceivablesTotal    decimal.Decimal `json:"receivablesTotal"`
	ActiveDepositsTotal decimal.Decimal `json:"activeDepositsTotal"`
	GeneratedAt         time.Time       `json:"generatedAt"`
}

// ToDashboardStatsResponse converts domain.DashboardStats to its DTO
func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalCustomers:      s.TotalCustomers,
		MonthlyIncome:       s.MonthlyIncome,
		ReceivablesTotal:    s.ReceivablesTotal,
		ActiveDepositsTotal: s.ActiveDepositsTotal,
		GeneratedAt:         s.GeneratedAt,
	}
}
