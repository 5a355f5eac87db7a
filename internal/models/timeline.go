package models

import (
	"encoding/json"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/killallgit/haptic-api/internal/services/haptics"
)

// Timeline represents a cached haptic analysis result for a source file
type Timeline struct {
	gorm.Model
	SourcePath  string  `json:"source_path" gorm:"not null;uniqueIndex"`
	EventsData  []byte  `json:"-" gorm:"type:blob;not null"` // JSON-encoded []haptics.Event
	FPS         int     `json:"fps" gorm:"not null;default:60"`
	Duration    float64 `json:"duration" gorm:"not null"` // Duration in seconds
	TotalFrames int     `json:"total_frames" gorm:"not null"`
	FileType    string  `json:"file_type" gorm:"not null"` // "audio" or "video"
}

// Events returns the decoded event list
func (t *Timeline) Events() ([]haptics.Event, error) {
	var events []haptics.Event
	if err := json.Unmarshal(t.EventsData, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SetEvents encodes and sets the event list
func (t *Timeline) SetEvents(events []haptics.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	t.EventsData = data
	return nil
}

// InputFile returns the basename of the source path, matching the
// input_file field of the timeline output format
func (t *Timeline) InputFile() string {
	return filepath.Base(t.SourcePath)
}

// FromTimeline populates the model from a pipeline timeline artifact
func (t *Timeline) FromTimeline(sourcePath string, timeline *haptics.Timeline) error {
	if err := t.SetEvents(timeline.Events); err != nil {
		return err
	}
	t.SourcePath = sourcePath
	t.FPS = timeline.Metadata.FPS
	t.Duration = timeline.Metadata.Duration
	t.TotalFrames = timeline.Metadata.TotalFrames
	t.FileType = string(timeline.Metadata.FileType)
	return nil
}
