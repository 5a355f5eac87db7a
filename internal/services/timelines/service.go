package timelines

import (
	"context"
	"log"
	"strings"

	"github.com/killallgit/haptic-api/internal/models"
)

// service implements TimelineService
type service struct {
	repo TimelineRepository
}

// NewService creates a new timeline service
func NewService(repo TimelineRepository) TimelineService {
	return &service{
		repo: repo,
	}
}

// GetTimeline retrieves a cached timeline for a source path
func (s *service) GetTimeline(ctx context.Context, sourcePath string) (*models.Timeline, error) {
	if sourcePath == "" {
		return nil, ErrInvalidSourcePath
	}

	timeline, err := s.repo.GetBySourcePath(ctx, sourcePath)
	if err != nil {
		log.Printf("[DEBUG] Failed to get timeline for %s: %v", sourcePath, err)
		return nil, err
	}

	log.Printf("[DEBUG] Found timeline for %s: frames=%d, duration=%.2f",
		sourcePath, timeline.TotalFrames, timeline.Duration)

	return timeline, nil
}

// SaveTimeline stores a timeline for a source path
func (s *service) SaveTimeline(ctx context.Context, timeline *models.Timeline) error {
	if timeline.SourcePath == "" {
		return ErrInvalidSourcePath
	}

	if len(timeline.EventsData) == 0 {
		return ErrInvalidEventsData
	}

	exists, err := s.repo.Exists(ctx, timeline.SourcePath)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("[DEBUG] Updating existing timeline for %s", timeline.SourcePath)
		return s.repo.Update(ctx, timeline)
	}

	log.Printf("[DEBUG] Creating new timeline for %s", timeline.SourcePath)
	err = s.repo.Create(ctx, timeline)
	if err != nil {
		// UNIQUE constraint violation means another writer won the race;
		// fall back to an update
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return s.repo.Update(ctx, timeline)
		}
		return err
	}
	return nil
}

// DeleteTimeline removes a cached timeline for a source path
func (s *service) DeleteTimeline(ctx context.Context, sourcePath string) error {
	if sourcePath == "" {
		return ErrInvalidSourcePath
	}

	log.Printf("[DEBUG] Deleting timeline for %s", sourcePath)
	return s.repo.Delete(ctx, sourcePath)
}

// TimelineExists checks if a timeline is cached for a source path
func (s *service) TimelineExists(ctx context.Context, sourcePath string) (bool, error) {
	if sourcePath == "" {
		return false, ErrInvalidSourcePath
	}

	return s.repo.Exists(ctx, sourcePath)
}
