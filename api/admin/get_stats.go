package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// GetStats returns pipeline counts for the admin dashboard
// @Summary      Get admin stats
// @Description  Clip totals by state, distinct clip owners and recorded video lookups
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.StatsResponse
// @Failure      401 {object} types.ErrorResponse
// @Failure      403 {object} types.ErrorResponse
// @Router       /api/v1/admin/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		stats, err := deps.ClipService.Stats(ctx)
		if err != nil {
			types.SendError(c, err)
			return
		}

		var videos int64
		if deps.VideoService != nil {
			if videos, err = deps.VideoService.Count(ctx); err != nil {
				types.SendError(c, err)
				return
			}
		}

		types.SendSuccess(c, types.StatsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Stats retrieved"},
			TotalClips:   stats.TotalClips,
			ClipsByState: stats.ByState,
			TotalUsers:   stats.Owners,
			TotalVideos:  videos,
		})
	}
}
