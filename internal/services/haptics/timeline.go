package haptics

import (
	"math"
	"path/filepath"
)

// FormatVersion is the timeline JSON format marker. Consumers must reject
// unknown versions rather than guess.
const FormatVersion = 3

// Event is a single haptic cue. Immutable once created; the selector emits
// events in ascending time order, so no re-sorting happens downstream.
type Event struct {
	Time      float64   `json:"time"`      // seconds, 3 decimals
	Intensity float64   `json:"intensity"` // 0-1, 3 decimals
	Sharpness float64   `json:"sharpness"` // 0-1, 3 decimals
	Type      EventType `json:"type"`
}

// Metadata describes one analysis run
type Metadata struct {
	Version     int        `json:"version"`
	FPS         int        `json:"fps"`
	Duration    float64    `json:"duration"` // seconds, 2 decimals
	TotalFrames int        `json:"total_frames"`
	InputFile   string     `json:"input_file"` // basename only
	FileType    SourceKind `json:"file_type"`
}

// Timeline is the externally visible artifact of the pipeline
type Timeline struct {
	Metadata Metadata `json:"metadata"`
	Events   []Event  `json:"haptic_events"`
}

// Assemble wraps an ordered event list with run metadata
func Assemble(events []Event, fps int, duration float64, totalFrames int, sourcePath string, kind SourceKind) *Timeline {
	if events == nil {
		events = []Event{}
	}

	return &Timeline{
		Metadata: Metadata{
			Version:     FormatVersion,
			FPS:         fps,
			Duration:    round2(duration),
			TotalFrames: totalFrames,
			InputFile:   filepath.Base(sourcePath),
			FileType:    kind,
		},
		Events: events,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
