package types

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/clips"
	apperrors "github.com/killallgit/clipper-api/pkg/errors"
	"github.com/killallgit/clipper-api/pkg/logging"
)

// ToAppError maps a service error onto the API error taxonomy
func ToAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var validationErr *clips.ValidationError
	var metadataErr *clips.MetadataError

	switch {
	case errors.As(err, &validationErr):
		appErr := apperrors.ValidationError(validationErr.Field, validationErr.Reason)
		if validationErr.Message != "" {
			appErr.Message = validationErr.Message
		}
		return appErr
	case errors.As(err, &metadataErr):
		return apperrors.MetadataUnavailable(metadataErr.SourceRef, metadataErr.Err)
	case errors.Is(err, clips.ErrClipNotFound):
		return apperrors.New(apperrors.ErrCodeNotFound, "clip not found").WithDetail("resource", "clip")
	case errors.Is(err, clips.ErrForbidden):
		return apperrors.Forbidden("clip")
	case errors.Is(err, auth.ErrUnauthenticated):
		return apperrors.Unauthorized("authentication required").WithCause(err)
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal server error")
	}
}

// SendError writes err as an ErrorResponse with the mapped status code
func SendError(c *gin.Context, err error) {
	appErr := ToAppError(err)
	status := appErr.GetHTTPCode()

	if status >= 500 && appErr.Code != apperrors.ErrCodeMetadataUnavailable {
		logging.WithComponent("api").WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	}

	resp := ErrorResponse{
		Status:    StatusError,
		Message:   appErr.Message,
		Error:     string(appErr.Code),
		Retryable: appErr.Retryable,
	}
	if len(appErr.Details) > 0 {
		resp.Details = appErr.Details
	}
	c.AbortWithStatusJSON(status, resp)
}
