package timelines

import (
	"context"

	"github.com/killallgit/haptic-api/internal/models"
)

// TimelineService defines the interface for timeline cache operations
type TimelineService interface {
	// GetTimeline retrieves a cached timeline for a source path
	GetTimeline(ctx context.Context, sourcePath string) (*models.Timeline, error)

	// SaveTimeline stores a timeline for a source path
	SaveTimeline(ctx context.Context, timeline *models.Timeline) error

	// DeleteTimeline removes a cached timeline for a source path
	DeleteTimeline(ctx context.Context, sourcePath string) error

	// TimelineExists checks if a timeline is cached for a source path
	TimelineExists(ctx context.Context, sourcePath string) (bool, error)
}

// TimelineRepository defines the interface for timeline data access
type TimelineRepository interface {
	// GetBySourcePath retrieves a timeline by source path
	GetBySourcePath(ctx context.Context, sourcePath string) (*models.Timeline, error)

	// Create saves a new timeline
	Create(ctx context.Context, timeline *models.Timeline) error

	// Update modifies an existing timeline
	Update(ctx context.Context, timeline *models.Timeline) error

	// Delete removes a timeline by source path
	Delete(ctx context.Context, sourcePath string) error

	// Exists checks if a timeline exists for a source path
	Exists(ctx context.Context, sourcePath string) (bool, error)
}
