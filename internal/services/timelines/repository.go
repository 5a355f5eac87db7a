package timelines

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/killallgit/haptic-api/internal/models"
)

// repository implements TimelineRepository
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new timeline repository
func NewRepository(db *gorm.DB) TimelineRepository {
	return &repository{db: db}
}

// GetBySourcePath retrieves a timeline by source path
func (r *repository) GetBySourcePath(ctx context.Context, sourcePath string) (*models.Timeline, error) {
	var timeline models.Timeline
	err := r.db.WithContext(ctx).
		Where("source_path = ?", sourcePath).
		First(&timeline).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimelineNotFound
		}
		return nil, err
	}

	return &timeline, nil
}

// Create saves a new timeline
func (r *repository) Create(ctx context.Context, timeline *models.Timeline) error {
	return r.db.WithContext(ctx).Create(timeline).Error
}

// Update modifies an existing timeline
func (r *repository) Update(ctx context.Context, timeline *models.Timeline) error {
	return r.db.WithContext(ctx).Save(timeline).Error
}

// Delete removes a timeline by source path
func (r *repository) Delete(ctx context.Context, sourcePath string) error {
	result := r.db.WithContext(ctx).
		Where("source_path = ?", sourcePath).
		Delete(&models.Timeline{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTimelineNotFound
	}

	return nil
}

// Exists checks if a timeline exists for a source path
func (r *repository) Exists(ctx context.Context, sourcePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Timeline{}).
		Where("source_path = ?", sourcePath).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
