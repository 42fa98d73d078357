// Package videos serves source metadata lookups made ahead of clipping.
package videos

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/clips"
	"github.com/killallgit/clipper-api/internal/services/metadata"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service resolves and records video lookups
type Service struct {
	db       *gorm.DB
	fetcher  metadata.Fetcher
	validate *validator.Validate
	logger   *logrus.Entry
}

// NewService creates a new video lookup service
func NewService(db *gorm.DB, fetcher metadata.Fetcher) *Service {
	return &Service{
		db:       db,
		fetcher:  fetcher,
		validate: validator.New(),
		logger:   logging.WithComponent("videos"),
	}
}

// Lookup resolves metadata for sourceRef and records the lookup. Metadata is
// fetched fresh every time.
func (s *Service) Lookup(ctx context.Context, sourceRef string, requester auth.Identity) (*models.VideoLookup, error) {
	if requester.ID == "" {
		return nil, auth.ErrUnauthenticated
	}

	sourceRef = strings.TrimSpace(sourceRef)
	if err := s.validate.Var(sourceRef, "required,http_url"); err != nil {
		return nil, clips.NewValidationError(clips.ReasonInvalidSourceReference, "url", "url must be an http or https URL")
	}

	md, err := s.fetcher.Resolve(ctx, sourceRef)
	if err != nil {
		return nil, &clips.MetadataError{SourceRef: sourceRef, Err: err}
	}

	lookup := &models.VideoLookup{
		OwnerID:   requester.ID,
		SourceRef: sourceRef,
		Metadata:  md,
	}
	if err := s.db.WithContext(ctx).Create(lookup).Error; err != nil {
		return nil, fmt.Errorf("failed to record video lookup: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": requester.ID,
		"duration": md.Duration,
	}).Debug("Video lookup recorded")
	return lookup, nil
}

// Count returns the number of recorded lookups
func (s *Service) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.VideoLookup{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count video lookups: %w", err)
	}
	return count, nil
}
