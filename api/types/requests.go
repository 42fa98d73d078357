package types

// CreateClipRequest is the body of POST /api/v1/clips
// @Description Parameters for cutting a clip out of a source video
type CreateClipRequest struct {
	YoutubeURL string   `json:"youtube_url" binding:"required" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	StartTime  float64  `json:"start_time" example:"30"`
	EndTime    *float64 `json:"end_time,omitempty" example:"40"`
	ClipName   string   `json:"clip_name,omitempty" example:"Morning hook"`
	Features   []string `json:"features,omitempty" example:"auto_captions,translation"`
}

// VideoInfoRequest is the body of POST /api/v1/video/info
type VideoInfoRequest struct {
	URL string `json:"url" binding:"required" example:"https://youtu.be/dQw4w9WgXcQ"`
}
