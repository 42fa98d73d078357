package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
)

const maxStderr = 512

// ytdlpOutput is the subset of `yt-dlp --dump-single-json` we read
type ytdlpOutput struct {
	Title       string   `json:"title"`
	Duration    *float64 `json:"duration"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	ViewCount   *int64   `json:"view_count"`
	Uploader    string   `json:"uploader"`
	Channel     string   `json:"channel"`
}

// YtDlpFetcher resolves metadata by running the yt-dlp binary
type YtDlpFetcher struct {
	binary  string
	timeout time.Duration
}

var _ Fetcher = (*YtDlpFetcher)(nil)

// NewYtDlpFetcher creates a fetcher for the given binary path
func NewYtDlpFetcher(binary string, timeout time.Duration) *YtDlpFetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YtDlpFetcher{binary: binary, timeout: timeout}
}

// Resolve extracts metadata without downloading the media
func (f *YtDlpFetcher) Resolve(ctx context.Context, sourceRef string) (models.SourceMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--",
		sourceRef,
	}

	cmd := exec.CommandContext(ctx, f.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return models.SourceMetadata{}, NewFetchError("ytdlp_exec", sourceRef, err, truncate(stderr.String(), maxStderr))
	}

	return parseYtDlpOutput(stdout.Bytes(), sourceRef)
}

func parseYtDlpOutput(data []byte, sourceRef string) (models.SourceMetadata, error) {
	var out ytdlpOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return models.SourceMetadata{}, NewFetchError("ytdlp_parse", sourceRef, err, "")
	}
	if out.Title == "" && out.Duration == nil {
		return models.SourceMetadata{}, NewFetchError("ytdlp_parse", sourceRef, errors.New("no video information in output"), "")
	}

	md := models.SourceMetadata{
		Title:       out.Title,
		Thumbnail:   out.Thumbnail,
		Description: out.Description,
		Uploader:    out.Uploader,
	}
	if md.Title == "" {
		md.Title = "Unknown"
	}
	if md.Uploader == "" {
		md.Uploader = out.Channel
	}
	if out.Duration != nil {
		md.Duration = *out.Duration
	}
	if out.ViewCount != nil {
		md.ViewCount = *out.ViewCount
	}

	return md.Normalize(), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
