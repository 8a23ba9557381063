package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// DashboardSvcFacade serves the dashboard aggregate, preferring the cache and
// recomputing on a miss.
type DashboardSvcFacade interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}
