// Package metadata resolves a source video reference to its metadata.
package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/clipper-api/internal/models"
)

var (
	ErrFetchFailed   = errors.New("metadata fetch failed")
	ErrVideoNotFound = errors.New("video not found")
)

// Fetcher resolves a source reference to metadata. Implementations return
// normalized metadata (duration >= 0, truncated description) or a
// *FetchError.
type Fetcher interface {
	Resolve(ctx context.Context, sourceRef string) (models.SourceMetadata, error)
}

// FetchError describes a failed resolution
type FetchError struct {
	Operation string // e.g. "ytdlp_exec", "ytdlp_parse", "youtube_videos_list"
	Source    string
	Err       error
	Stderr    string
}

func (e *FetchError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("metadata %s failed for %s: %v (stderr: %s)", e.Operation, e.Source, e.Err, e.Stderr)
	}
	return fmt.Sprintf("metadata %s failed for %s: %v", e.Operation, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrFetchFailed
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewFetchError creates a new FetchError
func NewFetchError(operation, source string, err error, stderr string) *FetchError {
	return &FetchError{
		Operation: operation,
		Source:    source,
		Err:       err,
		Stderr:    stderr,
	}
}
