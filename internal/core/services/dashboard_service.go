package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/core/events"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
)

// dashboardService serves the dashboard aggregate, preferring the cache and
// recomputing from the ledgers on a miss.
type dashboardService struct {
	dashboardRepo portsrepo.DashboardReader
	cache         portsrepo.DashboardStatsCache
}

// NewDashboardService creates a new DashboardService. cache may be nil, in
// which case every read recomputes.
func NewDashboardService(dashboardRepo portsrepo.DashboardReader, cache portsrepo.DashboardStatsCache) portssvc.DashboardSvcFacade {
	return &dashboardService{dashboardRepo: dashboardRepo, cache: cache}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetStats returns the dashboard aggregate.
func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			logger.Warn("Stats cache read failed, recomputing", slog.String("error", err.Error()))
		} else if cached != nil {
			resp := dto.ToDashboardStatsResponse(cached)
			return &resp, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *stats); err != nil {
			logger.Warn("Stats cache write failed", slog.String("error", err.Error()))
		}
	}

	resp := dto.ToDashboardStatsResponse(stats)
	return &resp, nil
}

func (s *dashboardService) compute(ctx context.Context) (*domain.DashboardStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	totalCustomers, err := s.dashboardRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	monthlyIncome, err := s.dashboardRepo.SumIncomeBetween(ctx, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}
	receivablesTotal, err := s.dashboardRepo.SumOutstandingReceivables(ctx)
	if err != nil {
		return nil, err
	}
	activeDeposits, err := s.dashboardRepo.SumActiveDeposits(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalCustomers:      totalCustomers,
		MonthlyIncome:       monthlyIncome,
		ReceivablesTotal:    receivablesTotal,
		ActiveDepositsTotal: activeDeposits,
		GeneratedAt:         now,
	}, nil
}

// StatsInvalidationHandler returns an event handler that drops the cached
// dashboard aggregate whenever a ledger mutation commits.
func StatsInvalidationHandler(cache portsrepo.DashboardStatsCache, logger *slog.Logger) events.Handler {
	return func(ctx context.Context, event domain.Event) {
		if err := cache.Invalidate(ctx); err != nil {
			logger.Warn("Failed to invalidate stats cache",
				slog.String("event", string(event.Kind)),
				slog.String("error", err.Error()),
			)
		}
	}
}
