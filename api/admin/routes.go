package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// RegisterRoutes registers admin routes. The caller is expected to guard
// the group with an admin role check.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/admin/stats
	router.GET("/stats", GetStats(deps))
}
