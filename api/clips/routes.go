package clips

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// RegisterRoutes registers clip-related routes. createLimit guards the
// expensive create endpoint separately from reads.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, createLimit gin.HandlerFunc) {
	router.POST("", createLimit, CreateClip(deps))
	router.GET("", ListClips(deps))
	router.GET("/:id", GetClip(deps))
	router.GET("/:id/download", DownloadClip(deps))
}
