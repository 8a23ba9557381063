package dto

import (
	"time"

	"github.com/hisabat-app/hisabat_backend/internal/core/domain"
)

// ActivityResponse defines the data returned for an activity feed entry.
type ActivityResponse struct {
	ActivityID  string    `json:"activityID"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToActivityResponse converts a domain.Activity to ActivityResponse DTO
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ActivityID:  a.ActivityID,
		Kind:        string(a.Kind),
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

// ToListActivityResponse converts a slice of domain.Activity to DTOs
func ToListActivityResponse(activities []domain.Activity) []ActivityResponse {
	res := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		res[i] = ToActivityResponse(&a)
	}
	return res
}

// ListActivitiesParams defines query parameters for the activity feed.
type ListActivitiesParams struct {
	Limit int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ListActivitiesResponse wraps the activity feed.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}
