package video

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
)

// PostInfo resolves source metadata ahead of clipping
// @Summary      Get video info
// @Description  Resolve title, duration and thumbnail for a source url and record the lookup
// @Tags         video
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body types.VideoInfoRequest true "Source url"
// @Success      200 {object} types.VideoInfoResponse "Resolved metadata"
// @Failure      400 {object} types.ErrorResponse "Invalid url"
// @Failure      401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure      502 {object} types.ErrorResponse "Source metadata could not be resolved"
// @Router       /api/v1/video/info [post]
func PostInfo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			return
		}

		var req types.VideoInfoRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		lookup, err := deps.VideoService.Lookup(c.Request.Context(), req.URL, identity)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.VideoInfoResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Video info retrieved"},
			VideoID:      lookup.ID,
			VideoInfo:    lookup.Metadata,
		})
	}
}
