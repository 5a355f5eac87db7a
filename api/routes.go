package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/haptic-api/api/haptics"
	"github.com/killallgit/haptic-api/api/health"
	"github.com/killallgit/haptic-api/api/types"
	"github.com/killallgit/haptic-api/api/version"
	"github.com/killallgit/haptic-api/internal/services/features"
	hapticsService "github.com/killallgit/haptic-api/internal/services/haptics"
	"github.com/killallgit/haptic-api/internal/services/timelines"
	"github.com/killallgit/haptic-api/pkg/config"
	"github.com/killallgit/haptic-api/pkg/ffmpeg"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// Load config for API routes
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Initialize services if not already set
	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.TimelineService == nil && deps.DB != nil {
		repo := timelines.NewRepository(deps.DB.DB)
		deps.TimelineService = timelines.NewService(repo)
	}

	if deps.Analyzer == nil {
		analyzer := buildAnalyzer(cfg)
		deps.Analyzer = analyzer
		deps.AnalyzerFor = func(fps int) types.HapticAnalyzer {
			return analyzer.WithFPS(fps)
		}
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")

	if cfg.RateLimiting.Enabled {
		rps := cfg.RateLimiting.Endpoints["analyze"]
		if rps <= 0 {
			rps = 10
		}
		v1.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, rps*2))
	}

	haptics.RegisterRoutes(v1, deps)

	return nil
}

// buildAnalyzer wires the ffmpeg client and feature extractor from config
func buildAnalyzer(cfg *config.Config) *hapticsService.Analyzer {
	media := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	extractor := features.NewExtractor(cfg.Processing.SampleRate, cfg.Processing.HopLength)

	return hapticsService.NewAnalyzer(media, extractor, hapticsService.Options{
		FPS:        cfg.Processing.FPS,
		SampleRate: cfg.Processing.SampleRate,
		HopLength:  cfg.Processing.HopLength,
		TempDir:    cfg.Storage.TempDir,
	})
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
