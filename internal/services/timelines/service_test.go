package timelines

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/killallgit/haptic-api/internal/models"
)

// mockTimelineRepository is a mock implementation of TimelineRepository
type mockTimelineRepository struct {
	timelines map[string]*models.Timeline
	createErr error
	existsErr error
}

func newMockRepository() *mockTimelineRepository {
	return &mockTimelineRepository{
		timelines: make(map[string]*models.Timeline),
	}
}

func (m *mockTimelineRepository) GetBySourcePath(ctx context.Context, sourcePath string) (*models.Timeline, error) {
	timeline, ok := m.timelines[sourcePath]
	if !ok {
		return nil, ErrTimelineNotFound
	}
	return timeline, nil
}

func (m *mockTimelineRepository) Create(ctx context.Context, timeline *models.Timeline) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.timelines[timeline.SourcePath]; ok {
		return fmt.Errorf("UNIQUE constraint failed: timelines.source_path")
	}
	m.timelines[timeline.SourcePath] = timeline
	return nil
}

func (m *mockTimelineRepository) Update(ctx context.Context, timeline *models.Timeline) error {
	m.timelines[timeline.SourcePath] = timeline
	return nil
}

func (m *mockTimelineRepository) Delete(ctx context.Context, sourcePath string) error {
	if _, ok := m.timelines[sourcePath]; !ok {
		return ErrTimelineNotFound
	}
	delete(m.timelines, sourcePath)
	return nil
}

func (m *mockTimelineRepository) Exists(ctx context.Context, sourcePath string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.timelines[sourcePath]
	return ok, nil
}

func validTimeline(sourcePath string) *models.Timeline {
	return &models.Timeline{
		SourcePath:  sourcePath,
		EventsData:  []byte(`[]`),
		FPS:         60,
		Duration:    2.0,
		TotalFrames: 120,
		FileType:    "audio",
	}
}

func TestService_SaveTimelineCreates(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	if err := svc.SaveTimeline(context.Background(), validTimeline("/media/tone.wav")); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	if _, ok := repo.timelines["/media/tone.wav"]; !ok {
		t.Error("SaveTimeline() did not create timeline")
	}
}

func TestService_SaveTimelineUpdatesExisting(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.SaveTimeline(ctx, validTimeline("/media/tone.wav")); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	updated := validTimeline("/media/tone.wav")
	updated.TotalFrames = 240
	if err := svc.SaveTimeline(ctx, updated); err != nil {
		t.Fatalf("SaveTimeline() second call error = %v", err)
	}

	if repo.timelines["/media/tone.wav"].TotalFrames != 240 {
		t.Errorf("TotalFrames = %v, want 240", repo.timelines["/media/tone.wav"].TotalFrames)
	}
}

func TestService_SaveTimelineRaceFallsBackToUpdate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	// Another writer creates the row between Exists and Create, so Create
	// fails with a constraint violation
	repo.createErr = fmt.Errorf("UNIQUE constraint failed: timelines.source_path")

	updated := validTimeline("/media/tone.wav")
	updated.TotalFrames = 240
	if err := svc.SaveTimeline(context.Background(), updated); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	if repo.timelines["/media/tone.wav"].TotalFrames != 240 {
		t.Error("SaveTimeline() did not fall back to update on constraint violation")
	}
}

func TestService_SaveTimelineValidation(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	noPath := validTimeline("")
	if err := svc.SaveTimeline(ctx, noPath); !errors.Is(err, ErrInvalidSourcePath) {
		t.Errorf("SaveTimeline() error = %v, want ErrInvalidSourcePath", err)
	}

	noEvents := validTimeline("/media/tone.wav")
	noEvents.EventsData = nil
	if err := svc.SaveTimeline(ctx, noEvents); !errors.Is(err, ErrInvalidEventsData) {
		t.Errorf("SaveTimeline() error = %v, want ErrInvalidEventsData", err)
	}
}

func TestService_GetTimeline(t *testing.T) {
	repo := newMockRepository()
	repo.timelines["/media/tone.wav"] = validTimeline("/media/tone.wav")
	svc := NewService(repo)
	ctx := context.Background()

	got, err := svc.GetTimeline(ctx, "/media/tone.wav")
	if err != nil {
		t.Fatalf("GetTimeline() error = %v", err)
	}
	if got.SourcePath != "/media/tone.wav" {
		t.Errorf("SourcePath = %v, want /media/tone.wav", got.SourcePath)
	}

	if _, err := svc.GetTimeline(ctx, "/no/such.mp3"); !errors.Is(err, ErrTimelineNotFound) {
		t.Errorf("GetTimeline() error = %v, want ErrTimelineNotFound", err)
	}

	if _, err := svc.GetTimeline(ctx, ""); !errors.Is(err, ErrInvalidSourcePath) {
		t.Errorf("GetTimeline() error = %v, want ErrInvalidSourcePath", err)
	}
}

func TestService_DeleteTimeline(t *testing.T) {
	repo := newMockRepository()
	repo.timelines["/media/tone.wav"] = validTimeline("/media/tone.wav")
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.DeleteTimeline(ctx, "/media/tone.wav"); err != nil {
		t.Fatalf("DeleteTimeline() error = %v", err)
	}

	if err := svc.DeleteTimeline(ctx, "/media/tone.wav"); !errors.Is(err, ErrTimelineNotFound) {
		t.Errorf("DeleteTimeline() error = %v, want ErrTimelineNotFound", err)
	}

	if err := svc.DeleteTimeline(ctx, ""); !errors.Is(err, ErrInvalidSourcePath) {
		t.Errorf("DeleteTimeline() error = %v, want ErrInvalidSourcePath", err)
	}
}

func TestService_TimelineExists(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	exists, err := svc.TimelineExists(ctx, "/media/tone.wav")
	if err != nil {
		t.Fatalf("TimelineExists() error = %v", err)
	}
	if exists {
		t.Error("TimelineExists() = true for missing timeline")
	}

	repo.timelines["/media/tone.wav"] = validTimeline("/media/tone.wav")
	exists, err = svc.TimelineExists(ctx, "/media/tone.wav")
	if err != nil {
		t.Fatalf("TimelineExists() error = %v", err)
	}
	if !exists {
		t.Error("TimelineExists() = false for cached timeline")
	}

	if _, err := svc.TimelineExists(ctx, ""); !errors.Is(err, ErrInvalidSourcePath) {
		t.Errorf("TimelineExists() error = %v, want ErrInvalidSourcePath", err)
	}
}
