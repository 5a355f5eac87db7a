package haptics

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/haptic-api/api/types"
)

// RegisterRoutes registers all haptic analysis routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/analyze", PostAnalyze(deps))
	router.GET("/timelines", GetTimeline(deps))
	router.DELETE("/timelines", DeleteTimeline(deps))
}
