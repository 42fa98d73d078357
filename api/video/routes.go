package video

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// RegisterRoutes registers video lookup routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/v1/video/info
	router.POST("/info", PostInfo(deps))
}
