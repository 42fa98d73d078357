package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/clips"
	apperrors "github.com/killallgit/clipper-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantCode      string
		wantRetryable bool
		wantReason    string
	}{
		{
			name:       "validation",
			err:        clips.NewValidationError("end_before_start", "end_time", "end time must be after start time"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
			wantReason: "end_before_start",
		},
		{
			name:          "metadata",
			err:           &clips.MetadataError{SourceRef: "https://youtu.be/x", Err: errors.New("exit status 1")},
			wantStatus:    http.StatusBadGateway,
			wantCode:      "METADATA_UNAVAILABLE",
			wantRetryable: true,
		},
		{
			name:       "not found wrapped",
			err:        fmt.Errorf("lookup: %w", clips.ErrClipNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "forbidden",
			err:        clips.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "unauthenticated",
			err:        auth.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:          "app error passthrough",
			err:           apperrors.RateLimitError("clips", "1/s"),
			wantStatus:    http.StatusTooManyRequests,
			wantCode:      "RATE_LIMIT",
			wantRetryable: true,
		},
		{
			name:       "unknown",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/clips", nil)

			SendError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var resp struct {
				Status    string         `json:"status"`
				Error     string         `json:"error"`
				Retryable bool           `json:"retryable"`
				Details   map[string]any `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantRetryable, resp.Retryable)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, resp.Details["reason"])
			}
		})
	}
}

func TestSendError_InternalHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	SendError(c, errors.New("password=hunter2"))

	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestNewClip(t *testing.T) {
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	locator := "clip_abc.txt"
	size := int64(321)
	end := 40.0

	tests := []struct {
		name            string
		clip            *models.Clip
		wantDownloadURL string
	}{
		{
			name: "completed exposes download url",
			clip: &models.Clip{
				ID: "abc", State: models.ClipStateCompleted, DownloadLocator: &locator, SizeBytes: &size,
				EndTime: &end, CreatedAt: created, UpdatedAt: created,
			},
			wantDownloadURL: "/api/v1/clips/abc/download",
		},
		{
			name: "failed has no download url",
			clip: &models.Clip{ID: "abc", State: models.ClipStateFailed, FailureReason: "timeout", CreatedAt: created},
		},
		{
			name: "processing has no download url",
			clip: &models.Clip{ID: "abc", State: models.ClipStateProcessing, DownloadLocator: &locator, CreatedAt: created},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewClip(tt.clip)
			assert.Equal(t, tt.wantDownloadURL, out.DownloadURL)
			assert.Equal(t, string(tt.clip.State), out.Status)
			assert.Equal(t, "2024-06-01T09:30:00Z", out.CreatedAt)
			assert.NotNil(t, out.Features)
			assert.NotNil(t, out.AppliedFeatures)
		})
	}
}

func TestCurrentIdentity(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(IdentityKey, auth.Identity{ID: "u1", Role: auth.RoleUser})

		identity, ok := CurrentIdentity(c)
		assert.True(t, ok)
		assert.Equal(t, "u1", identity.ID)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		_, ok := CurrentIdentity(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
