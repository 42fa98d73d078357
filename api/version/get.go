package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// Get handles version requests
// @Summary      Get version
// @Description  Service name and build information
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /version [get]
func Get(build types.BuildInfo) gin.HandlerFunc {
	if build.Version == "" {
		build.Version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Clipper API",
			"version":     build.Version,
			"git_commit":  build.GitCommit,
			"build_time":  build.BuildTime,
			"description": "API for cutting clips out of source videos and applying feature stages",
			"status":      "running",
		})
	}
}
