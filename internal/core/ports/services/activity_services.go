package services

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	"github.com/hisabat-app/hisabat_backend/internal/dto"
)

// ActivityRecorderSvc records entries in the activity feed. Recording is
// best-effort: callers invoke it after their transaction commits and a
// failure only logs.
type ActivityRecorderSvc interface {
	Record(ctx context.Context, kind domain.ActivityKind, description string)
}

// ActivityReaderSvc defines read operations over the activity feed.
type ActivityReaderSvc interface {
	// ListActivities retrieves the most recent activity entries.
	ListActivities(ctx context.Context, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error)
}

// ActivitySvcFacade combines the activity feed service interfaces.
type ActivitySvcFacade interface {
	ActivityRecorderSvc
	ActivityReaderSvc
}
