package health

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// RegisterRoutes registers health check routes. HEAD answers probes that
// only read the status code.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	handler := Get(deps)
	engine.GET("/health", handler)
	engine.HEAD("/health", handler)
}
