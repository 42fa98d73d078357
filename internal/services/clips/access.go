package clips

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/internal/services/auth"
)

// Download is a retrieved clip artifact
type Download struct {
	Data        []byte
	Filename    string
	ContentType string
}

type clipFinder interface {
	FindByID(ctx context.Context, id string) (*models.Clip, error)
}

// Retriever serves artifacts to their owner or an admin
type Retriever struct {
	clips clipFinder
	store artifacts.Store
}

// NewRetriever creates a retriever over the record and artifact stores
func NewRetriever(clips clipFinder, store artifacts.Store) *Retriever {
	return &Retriever{clips: clips, store: store}
}

// Authorize returns ErrForbidden unless requester owns the clip or is an admin
func Authorize(clip *models.Clip, requester auth.Identity) error {
	if requester.IsAdmin() || clip.IsOwnedBy(requester.ID) {
		return nil
	}
	return ErrForbidden
}

// Retrieve returns the artifact for clipID. Ownership is checked before the
// artifact store is consulted.
func (r *Retriever) Retrieve(ctx context.Context, clipID string, requester auth.Identity) (*Download, error) {
	clip, err := r.clips.FindByID(ctx, clipID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(clip, requester); err != nil {
		return nil, err
	}

	if clip.DownloadLocator == nil || *clip.DownloadLocator == "" {
		return nil, ErrClipNotFound
	}

	data, err := r.store.Read(ctx, *clip.DownloadLocator)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			return nil, ErrClipNotFound
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	return &Download{
		Data:        data,
		Filename:    DownloadFilename(clip),
		ContentType: "text/plain; charset=utf-8",
	}, nil
}

// DownloadFilename derives a filesystem safe name from the clip name
func DownloadFilename(clip *models.Clip) string {
	return artifacts.SanitizeName(clip.Name) + ".txt"
}
