// Package clips implements the clip processing pipeline: it validates a
// request, resolves source metadata, runs the requested feature stages and
// records the outcome on the clip.
package clips

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/internal/services/auth"
	"github.com/killallgit/clipper-api/internal/services/features"
	"github.com/killallgit/clipper-api/internal/services/lifecycle"
	"github.com/killallgit/clipper-api/internal/services/metadata"
	"github.com/killallgit/clipper-api/internal/services/window"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRequestTimeout = 60 * time.Second
	DefaultListLimit      = 100

	// FailureTimeout is recorded when processing outlives the request deadline
	FailureTimeout = "timeout"
)

// CreateClipParams contains parameters for creating a clip
type CreateClipParams struct {
	SourceRef string
	StartTime float64
	EndTime   *float64
	Name      string
	Features  []string
}

// FeatureRunner runs feature stages for a clip
type FeatureRunner interface {
	Run(ctx context.Context, ids []string, in features.Input) []models.FeatureStageResult
}

// Stats summarizes stored clips
type Stats struct {
	TotalClips int64            `json:"total_clips"`
	ByState    map[string]int64 `json:"by_state"`
	Owners     int64            `json:"owners"`
}

// Service orchestrates clip creation and access
type Service struct {
	repo      Repository
	fetcher   metadata.Fetcher
	runner    FeatureRunner
	lifecycle *lifecycle.Manager
	retriever *Retriever
	validate  *validator.Validate
	timeout   time.Duration
	listLimit int
	logger    *logrus.Entry
}

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithRequestTimeout bounds the work done after a clip is persisted
func WithRequestTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithListLimit caps how many clips ListClips returns
func WithListLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.listLimit = n
		}
	}
}

// NewService creates a new clips service
func NewService(repo Repository, fetcher metadata.Fetcher, runner FeatureRunner, store artifacts.Store, opts ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		fetcher:   fetcher,
		runner:    runner,
		lifecycle: lifecycle.NewManager(repo, store),
		retriever: NewRetriever(repo, store),
		validate:  validator.New(),
		timeout:   DefaultRequestTimeout,
		listLimit: DefaultListLimit,
		logger:    logging.WithComponent("clips"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lifecycle exposes the state manager shared with the stale clip sweeper
func (s *Service) Lifecycle() *lifecycle.Manager {
	return s.lifecycle
}

// CreateClip validates the request, persists the clip and processes it.
// Validation and metadata errors are returned before anything is written.
// Once the clip exists a processing failure is recorded on the clip, which
// is returned with a nil error.
func (s *Service) CreateClip(ctx context.Context, params CreateClipParams, requester auth.Identity) (*models.Clip, error) {
	if requester.ID == "" {
		return nil, auth.ErrUnauthenticated
	}

	sourceRef := strings.TrimSpace(params.SourceRef)
	if err := s.validate.Var(sourceRef, "required,http_url"); err != nil {
		return nil, NewValidationError(ReasonInvalidSourceReference, "source_ref", "source reference must be an http or https URL")
	}

	md, err := s.fetcher.Resolve(ctx, sourceRef)
	if err != nil {
		return nil, &MetadataError{SourceRef: sourceRef, Err: err}
	}

	if res := window.Validate(params.StartTime, params.EndTime, md.Duration); res != window.Valid {
		return nil, NewValidationError(res.Reason(), res.Field(), res.Message())
	}

	requested := make(models.FeatureList, len(params.Features))
	copy(requested, params.Features)

	clip := &models.Clip{
		OwnerID:   requester.ID,
		SourceRef: sourceRef,
		Name:      strings.TrimSpace(params.Name),
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		Metadata:  md,
		Features:  requested,
	}

	// From here on the work continues if the caller goes away; the request
	// timeout bounds it instead.
	workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.repo.Insert(workCtx, clip); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"clip_id":  clip.ID,
		"owner_id": clip.OwnerID,
		"features": len(clip.Features),
	})

	if err := s.lifecycle.Start(workCtx, clip); err != nil {
		return s.settle(ctx, clip, fmt.Errorf("failed to start clip processing: %w", err), log)
	}

	clip.Results = s.runner.Run(workCtx, clip.Features, features.Input{
		ClipID:    clip.ID,
		SourceRef: clip.SourceRef,
		StartTime: clip.StartTime,
		EndTime:   clip.EndTime,
		Metadata:  clip.Metadata,
	})

	if workCtx.Err() != nil {
		return s.fail(ctx, clip, FailureTimeout, log)
	}

	if err := s.lifecycle.Materialize(workCtx, clip, artifacts.Render(clip)); err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			return s.settle(ctx, clip, err, log)
		}
		reason := "artifact write failed: " + err.Error()
		if workCtx.Err() != nil {
			reason = FailureTimeout
		}
		return s.fail(ctx, clip, reason, log)
	}

	log.Info("Clip completed")
	return clip, nil
}

func (s *Service) fail(ctx context.Context, clip *models.Clip, reason string, log *logrus.Entry) (*models.Clip, error) {
	failCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.lifecycle.Fail(failCtx, clip, reason); err != nil {
		return s.settle(ctx, clip, fmt.Errorf("failed to record clip failure: %w", err), log)
	}

	log.WithField("reason", reason).Warn("Clip failed")
	return clip, nil
}

// settle handles a transition that could not be applied after the clip was
// inserted. When another writer, such as the stale clip sweeper, moved the
// clip first, the stored record is returned with a nil error. Otherwise the
// clip is returned together with err.
func (s *Service) settle(ctx context.Context, clip *models.Clip, err error, log *logrus.Entry) (*models.Clip, error) {
	if errors.Is(err, lifecycle.ErrInvalidTransition) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		stored, ferr := s.repo.FindByID(loadCtx, clip.ID)
		if ferr == nil {
			log.WithFields(logrus.Fields{
				"state":  stored.State,
				"reason": stored.FailureReason,
			}).Warn("Clip was settled concurrently")
			return stored, nil
		}
		err = fmt.Errorf("%w (reload failed: %v)", err, ferr)
	}

	log.WithError(err).Error("Failed to record clip state")
	return clip, err
}

// ListClips returns the owner's clips, newest first
func (s *Service) ListClips(ctx context.Context, ownerID string) ([]*models.Clip, error) {
	if ownerID == "" {
		return nil, auth.ErrUnauthenticated
	}
	return s.repo.FindByOwner(ctx, ownerID, s.listLimit)
}

// GetClip returns a clip to its owner or an admin
func (s *Service) GetClip(ctx context.Context, id string, requester auth.Identity) (*models.Clip, error) {
	clip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(clip, requester); err != nil {
		return nil, err
	}
	return clip, nil
}

// DownloadClip returns the clip artifact to its owner or an admin
func (s *Service) DownloadClip(ctx context.Context, id string, requester auth.Identity) (*Download, error) {
	return s.retriever.Retrieve(ctx, id, requester)
}

// Stats returns clip counts for the admin dashboard
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	byState, err := s.repo.CountByState(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := s.repo.CountOwners(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByState: make(map[string]int64), Owners: owners}
	for _, state := range []models.ClipState{
		models.ClipStateCreated, models.ClipStateProcessing, models.ClipStateCompleted, models.ClipStateFailed,
	} {
		stats.ByState[string(state)] = byState[state]
		stats.TotalClips += byState[state]
	}
	return stats, nil
}

// IsValidation reports whether err is a rejected request
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
