package haptics

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/haptic-api/api/types"
	"github.com/killallgit/haptic-api/internal/models"
	"github.com/killallgit/haptic-api/internal/services/haptics"
	"github.com/killallgit/haptic-api/internal/services/timelines"
	"github.com/killallgit/haptic-api/pkg/ffmpeg"
)

// AnalyzeRequest is the request body for timeline generation
type AnalyzeRequest struct {
	Path  string `json:"path" binding:"required"`
	FPS   int    `json:"fps"`
	Force bool   `json:"force"`
}

// PostAnalyze generates a haptic timeline for a media file, serving from the
// cache when a timeline for the same path already exists
func PostAnalyze(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		ctx := c.Request.Context()

		if deps.TimelineService != nil && !req.Force {
			cached, err := deps.TimelineService.GetTimeline(ctx, req.Path)
			if err == nil {
				timeline, convErr := toTimeline(cached)
				if convErr == nil {
					c.JSON(http.StatusOK, types.AnalyzeResponse{
						Status:   types.StatusOK,
						Cached:   true,
						Timeline: timeline,
					})
					return
				}
				log.Printf("[WARN] Discarding unreadable cached timeline for %s: %v", req.Path, convErr)
			} else if !errors.Is(err, timelines.ErrTimelineNotFound) {
				log.Printf("[WARN] Timeline cache lookup failed for %s: %v", req.Path, err)
			}
		}

		analyzer := deps.Analyzer
		if req.FPS > 0 && deps.AnalyzerFor != nil {
			analyzer = deps.AnalyzerFor(req.FPS)
		}
		if analyzer == nil {
			types.SendInternalError(c, "Analyzer not configured")
			return
		}

		timeline, err := analyzer.Analyze(ctx, req.Path)
		if err != nil {
			handleAnalysisError(c, err)
			return
		}

		if deps.TimelineService != nil {
			record := &models.Timeline{}
			if convErr := record.FromTimeline(req.Path, timeline); convErr != nil {
				log.Printf("[WARN] Failed to encode timeline for caching: %v", convErr)
			} else if saveErr := deps.TimelineService.SaveTimeline(ctx, record); saveErr != nil {
				log.Printf("[WARN] Failed to cache timeline for %s: %v", req.Path, saveErr)
			}
		}

		c.JSON(http.StatusOK, types.AnalyzeResponse{
			Status:   types.StatusOK,
			Cached:   false,
			Timeline: timeline,
		})
	}
}

// GetTimeline returns a cached timeline for a source path
func GetTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendBadRequest(c, "Missing path query parameter")
			return
		}

		if deps.TimelineService == nil {
			types.SendInternalError(c, "Timeline cache not configured")
			return
		}

		cached, err := deps.TimelineService.GetTimeline(c.Request.Context(), path)
		if err != nil {
			if errors.Is(err, timelines.ErrTimelineNotFound) {
				types.SendNotFound(c, "No timeline found for path")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		timeline, err := toTimeline(cached)
		if err != nil {
			types.SendInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.TimelineResponse{
			Status:   types.StatusOK,
			Timeline: timeline,
		})
	}
}

// DeleteTimeline removes a cached timeline for a source path
func DeleteTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Query("path")
		if path == "" {
			types.SendBadRequest(c, "Missing path query parameter")
			return
		}

		if deps.TimelineService == nil {
			types.SendInternalError(c, "Timeline cache not configured")
			return
		}

		if err := deps.TimelineService.DeleteTimeline(c.Request.Context(), path); err != nil {
			if errors.Is(err, timelines.ErrTimelineNotFound) {
				types.SendNotFound(c, "No timeline found for path")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": types.StatusOK})
	}
}

// handleAnalysisError maps analysis failures onto HTTP status codes
func handleAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, haptics.ErrUnsupportedSource):
		types.SendBadRequest(c, err.Error())
	case errors.Is(err, ffmpeg.ErrNoAudioTrack),
		errors.Is(err, ffmpeg.ErrInvalidMedia),
		errors.Is(err, haptics.ErrDegenerateSeries):
		types.SendUnprocessable(c, err.Error())
	default:
		types.SendInternalError(c, err.Error())
	}
}

// toTimeline decodes a cached timeline record back into the wire format
func toTimeline(record *models.Timeline) (*haptics.Timeline, error) {
	events, err := record.Events()
	if err != nil {
		return nil, err
	}

	return &haptics.Timeline{
		Metadata: haptics.Metadata{
			Version:     haptics.FormatVersion,
			FPS:         record.FPS,
			Duration:    record.Duration,
			TotalFrames: record.TotalFrames,
			InputFile:   record.InputFile(),
			FileType:    haptics.SourceKind(record.FileType),
		},
		Events: events,
	}, nil
}
