package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/killallgit/clipper-api/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeFetcher resolves metadata through the YouTube Data API
type YouTubeFetcher struct {
	client *youtube.Service
}

var _ Fetcher = (*YouTubeFetcher)(nil)

// NewYouTubeFetcher creates a fetcher using an API key. Extra client
// options are appended, e.g. an endpoint override in tests.
func NewYouTubeFetcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeFetcher, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube client: %w", err)
	}
	return &YouTubeFetcher{client: client}, nil
}

// Resolve looks up a single video by the id embedded in sourceRef
func (f *YouTubeFetcher) Resolve(ctx context.Context, sourceRef string) (models.SourceMetadata, error) {
	id, err := VideoID(sourceRef)
	if err != nil {
		return models.SourceMetadata{}, NewFetchError("youtube_video_id", sourceRef, err, "")
	}

	resp, err := f.client.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return models.SourceMetadata{}, NewFetchError("youtube_videos_list", sourceRef, err, "")
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return models.SourceMetadata{}, NewFetchError("youtube_videos_list", sourceRef, ErrVideoNotFound, "")
	}

	item := resp.Items[0]
	md := models.SourceMetadata{
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Uploader:    item.Snippet.ChannelTitle,
		Thumbnail:   thumbnailURL(item.Snippet.Thumbnails),
	}
	if item.ContentDetails != nil {
		d, err := ParseISODuration(item.ContentDetails.Duration)
		if err != nil {
			return models.SourceMetadata{}, NewFetchError("youtube_duration", sourceRef, err, "")
		}
		md.Duration = d
	}
	if item.Statistics != nil {
		md.ViewCount = int64(item.Statistics.ViewCount)
	}

	return md.Normalize(), nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the 11 character video id from a YouTube URL
func VideoID(ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/embed/"), strings.HasPrefix(u.Path, "/live/"):
			parts := strings.Split(strings.Trim(u.Path, "/"), "/")
			if len(parts) >= 2 {
				id = parts[1]
			}
		}
	default:
		return "", fmt.Errorf("not a youtube url: %s", u.Hostname())
	}

	if !videoIDPattern.MatchString(id) {
		return "", errors.New("no video id in url")
	}
	return id, nil
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration such as PT3M32S to seconds
func ParseISODuration(s string) (float64, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	var total float64
	units := []float64{86400, 3600, 60, 1}
	for i, mult := range units {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
		}
		total += v * mult
	}
	return total, nil
}
