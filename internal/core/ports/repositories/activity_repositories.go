package repositories

import (
	"context"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
)

// ActivityReader defines read operations for the activity feed
type ActivityReader interface {
	// ListActivities retrieves the most recent activities, newest first.
	ListActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}

// ActivityWriter defines write operations for the activity feed
type ActivityWriter interface {
	// SaveActivity appends an entry to the activity feed.
	SaveActivity(ctx context.Context, activity domain.Activity) error
}

// ActivityRepositoryFacade combines the activity feed repository interfaces
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
