package types

import (
	"github.com/killallgit/clipper-api/internal/database"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/clips"
	"github.com/killallgit/clipper-api/internal/services/videos"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB           *database.DB
	Auth         *auth.Service
	ClipService  *clips.Service
	VideoService *videos.Service
	Build        BuildInfo
}

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}
