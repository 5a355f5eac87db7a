package types

import (
	"context"

	"github.com/killallgit/haptic-api/internal/database"
	"github.com/killallgit/haptic-api/internal/services/haptics"
	"github.com/killallgit/haptic-api/internal/services/timelines"
)

// HapticAnalyzer produces a haptic event timeline from a media file
type HapticAnalyzer interface {
	Analyze(ctx context.Context, sourcePath string) (*haptics.Timeline, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	TimelineService timelines.TimelineService
	Analyzer        HapticAnalyzer

	// AnalyzerFor returns an analyzer tuned to the requested frame rate.
	// When nil, handlers fall back to Analyzer for all requests.
	AnalyzerFor func(fps int) HapticAnalyzer
}
