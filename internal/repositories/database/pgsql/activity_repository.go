package pgsql

import (
	"context"
	"fmt"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat_backend/internal/models"
	"github.com/hisabat-app/hisabat_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	pool *pgxpool.Pool
}

// newPgxActivityRepository creates a new repository for the activity feed.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{pool: pool}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

// SaveActivity appends an entry to the activity feed.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)

	query := `
		INSERT INTO activities (activity_id, kind, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query, m.ActivityID, m.Kind, m.Description, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", m.ActivityID, err)
	}
	return nil
}

// ListActivities retrieves the most recent activities, newest first.
func (r *PgxActivityRepository) ListActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := `
		SELECT activity_id, kind, description, created_at, last_updated_at
		FROM activities
		ORDER BY created_at DESC, activity_id DESC
		LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var modelActivities []models.Activity
	for rows.Next() {
		var m models.Activity
		if err := rows.Scan(&m.ActivityID, &m.Kind, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		modelActivities = append(modelActivities, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return mapping.ToDomainActivitySlice(modelActivities), nil
}
