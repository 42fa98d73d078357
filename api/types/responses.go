package types

import (
	"time"

	"github.com/killallgit/clipper-api/internal/models"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Error     string      `json:"error,omitempty"`   // Error code/type
	Details   interface{} `json:"details,omitempty"` // Additional error details
	Retryable bool        `json:"retryable,omitempty"`
}

// Clip is the API representation of a clip
// @Description A clip and the outcome of its feature stages
type Clip struct {
	ID              string                      `json:"id" example:"052f3b9b-cc02-418c-a9ab-8f49534c01c8"`
	Name            string                      `json:"name" example:"Clip 052f3b9b"`
	YoutubeURL      string                      `json:"youtube_url" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	StartTime       float64                     `json:"start_time" example:"30"`
	EndTime         *float64                    `json:"end_time" example:"40"`
	Status          string                      `json:"status" example:"completed"`
	VideoInfo       models.SourceMetadata       `json:"video_info"`
	Features        []string                    `json:"features"`
	AppliedFeatures []models.FeatureStageResult `json:"applied_features"`
	DownloadURL     string                      `json:"download_url,omitempty" example:"/api/v1/clips/052f3b9b-cc02-418c-a9ab-8f49534c01c8/download"`
	SizeBytes       *int64                      `json:"size_bytes,omitempty"`
	FailureReason   string                      `json:"failure_reason,omitempty"`
	CreatedAt       string                      `json:"created_at" example:"2025-09-25T16:36:45Z"`
	UpdatedAt       string                      `json:"updated_at" example:"2025-09-25T16:36:47Z"`
}

// ClipResponse for a single clip
type ClipResponse struct {
	BaseResponse
	Clip Clip `json:"clip"`
}

// ClipsResponse for clip lists
type ClipsResponse struct {
	BaseResponse
	Clips []Clip `json:"clips"`
	Count int    `json:"count"`
}

// VideoInfoResponse for a metadata lookup
type VideoInfoResponse struct {
	BaseResponse
	VideoID   string                `json:"video_id"`
	VideoInfo models.SourceMetadata `json:"video_info"`
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	ID      string `json:"id" example:"user-123"`
	Role    string `json:"role" example:"user"`
	IsAdmin bool   `json:"is_admin"`
}

// StatsResponse for the admin dashboard
type StatsResponse struct {
	BaseResponse
	TotalClips   int64            `json:"total_clips"`
	ClipsByState map[string]int64 `json:"clips_by_state"`
	TotalUsers   int64            `json:"total_users"`
	TotalVideos  int64            `json:"total_videos"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}

// ClipDownloadPath is the route serving a clip artifact
func ClipDownloadPath(id string) string {
	return "/api/v1/clips/" + id + "/download"
}

// NewClip converts a stored clip into its API representation
func NewClip(c *models.Clip) Clip {
	out := Clip{
		ID:              c.ID,
		Name:            c.Name,
		YoutubeURL:      c.SourceRef,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		Status:          string(c.State),
		VideoInfo:       c.Metadata,
		Features:        c.Features,
		AppliedFeatures: c.Results,
		SizeBytes:       c.SizeBytes,
		FailureReason:   c.FailureReason,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if out.AppliedFeatures == nil {
		out.AppliedFeatures = []models.FeatureStageResult{}
	}
	if c.State == models.ClipStateCompleted && c.DownloadLocator != nil {
		out.DownloadURL = ClipDownloadPath(c.ID)
	}
	return out
}

// NewClips converts a list of stored clips
func NewClips(list []*models.Clip) []Clip {
	out := make([]Clip, 0, len(list))
	for _, c := range list {
		out = append(out, NewClip(c))
	}
	return out
}
