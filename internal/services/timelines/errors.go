package timelines

import "errors"

var (
	// ErrTimelineNotFound is returned when no cached timeline exists
	ErrTimelineNotFound = errors.New("timeline not found")

	// ErrInvalidSourcePath is returned when a source path is empty
	ErrInvalidSourcePath = errors.New("invalid source path")

	// ErrInvalidEventsData is returned when the events blob is empty
	ErrInvalidEventsData = errors.New("invalid events data")
)
