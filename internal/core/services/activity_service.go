package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	portssvc "github.com/hisabat-app/hisabat_backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
)

// activityService maintains the append-only activity feed.
type activityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// Record appends an entry to the activity feed. Callers invoke it after
// their transaction commits; a failure only logs and never propagates.
func (s *activityService) Record(ctx context.Context, kind domain.ActivityKind, description string) {
	now := time.Now().UTC()
	activity := domain.Activity{
		ActivityID:  uuid.NewString(),
		Kind:        kind,
		Description: description,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to record activity",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
	}
}

// ListActivities retrieves the most recent activity entries.
func (s *activityService) ListActivities(ctx context.Context, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	activities, err := s.activityRepo.ListActivities(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &dto.ListActivitiesResponse{Activities: dto.ToListActivityResponse(activities)}, nil
}
