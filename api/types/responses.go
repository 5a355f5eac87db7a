package types

import "github.com/killallgit/haptic-api/internal/services/haptics"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AnalyzeResponse wraps a generated timeline
type AnalyzeResponse struct {
	Status   string            `json:"status"`
	Cached   bool              `json:"cached"`
	Timeline *haptics.Timeline `json:"timeline"`
}

// TimelineResponse wraps a cached timeline lookup
type TimelineResponse struct {
	Status   string            `json:"status"`
	Timeline *haptics.Timeline `json:"timeline"`
}
