package clips

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/clips"
)

// CreateClip handles clip creation
// @Summary Create a clip
// @Description Cut a time window out of a source video and run the requested feature stages over it.
// @Description Processing is synchronous: the response carries the clip in its terminal state,
// @Description "completed" with a download url or "failed" with a failure reason.
// @Tags clips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body types.CreateClipRequest true "Source url, time window in seconds and feature ids"
// @Success 201 {object} types.ClipResponse "Clip processed (inspect status for the outcome)"
// @Failure 400 {object} types.ErrorResponse "Invalid source or time window"
// @Failure 401 {object} types.ErrorResponse "Missing or invalid token"
// @Failure 429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} types.ErrorResponse "Source metadata could not be resolved"
// @Router /api/v1/clips [post]
func CreateClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			return
		}

		var req types.CreateClipRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		clip, err := deps.ClipService.CreateClip(c.Request.Context(), clips.CreateClipParams{
			SourceRef: req.YoutubeURL,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Name:      req.ClipName,
			Features:  req.Features,
		}, identity)
		if err != nil {
			types.SendError(c, err)
			return
		}

		message := "Clip created successfully"
		if clip.State == models.ClipStateFailed {
			message = "Clip processing failed"
		}

		types.SendCreated(c, types.ClipResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: message},
			Clip:         types.NewClip(clip),
		})
	}
}

// ListClips handles listing the caller's clips
// @Summary List clips
// @Description List the caller's clips, newest first
// @Tags clips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.ClipsResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/clips [get]
func ListClips(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			return
		}

		list, err := deps.ClipService.ListClips(c.Request.Context(), identity.ID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		out := types.NewClips(list)
		types.SendSuccess(c, types.ClipsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Clips retrieved"},
			Clips:        out,
			Count:        len(out),
		})
	}
}

// GetClip handles retrieving a single clip
// @Summary Get clip
// @Description Get a clip by id. Only the owner or an admin may read it.
// @Tags clips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Clip id"
// @Success 200 {object} types.ClipResponse
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/clips/{id} [get]
func GetClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			return
		}

		clip, err := deps.ClipService.GetClip(c.Request.Context(), c.Param("id"), identity)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.ClipResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Clip retrieved"},
			Clip:         types.NewClip(clip),
		})
	}
}

// DownloadClip handles artifact downloads
// @Summary Download clip
// @Description Download the artifact of a completed clip. Only the owner or an admin may download it.
// @Tags clips
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Clip id"
// @Success 200 {file} binary
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/clips/{id}/download [get]
func DownloadClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			return
		}

		download, err := deps.ClipService.DownloadClip(c.Request.Context(), c.Param("id"), identity)
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
		c.Data(http.StatusOK, download.ContentType, download.Data)
	}
}
