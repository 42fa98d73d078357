// Package lifecycle moves clips through created, processing, completed and
// failed, applying the side effects that belong to each transition.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/artifacts"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidTransition is returned for any transition the state machine forbids
	ErrInvalidTransition = errors.New("invalid clip state transition")

	// ErrStateConflict is returned by a StateStore when the stored state no
	// longer matches the expected one
	ErrStateConflict = errors.New("clip state changed concurrently")

	// ErrReasonRequired is returned by Fail when no reason is given
	ErrReasonRequired = errors.New("failure reason is required")
)

// StateStore applies a state change as a conditional update: the record is
// only written if its current state equals from.
type StateStore interface {
	UpdateState(ctx context.Context, id string, from, to models.ClipState, fields map[string]any) error
}

// Manager owns clip state transitions
type Manager struct {
	store     StateStore
	artifacts artifacts.Store
	now       func() time.Time
	logger    *logrus.Entry
}

// NewManager creates a lifecycle manager
func NewManager(store StateStore, artifactStore artifacts.Store) *Manager {
	return &Manager{
		store:     store,
		artifacts: artifactStore,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logging.WithComponent("lifecycle"),
	}
}

// Start moves a created clip into processing
func (m *Manager) Start(ctx context.Context, clip *models.Clip) error {
	return m.transition(ctx, clip, models.ClipStateProcessing, nil)
}

// Materialize writes the artifact for a processing clip and completes it.
// State, locator, size and results are set in a single record update. A
// write failure leaves the clip in processing. If the record update fails,
// including when another writer moved the clip first, the artifact is
// removed again so no bytes outlive a clip that did not complete.
func (m *Manager) Materialize(ctx context.Context, clip *models.Clip, data []byte) error {
	if clip.State != models.ClipStateProcessing {
		return fmt.Errorf("%w: cannot materialize clip in state %s", ErrInvalidTransition, clip.State)
	}

	locator, err := m.artifacts.Write(ctx, clip.ID, data)
	if err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	size := int64(len(data))

	fields := map[string]any{
		"download_locator": locator,
		"size_bytes":       size,
		"results":          clip.Results,
	}
	if err := m.transition(ctx, clip, models.ClipStateCompleted, fields); err != nil {
		if derr := m.artifacts.Delete(context.WithoutCancel(ctx), locator); derr != nil {
			m.logger.WithField("clip_id", clip.ID).WithError(derr).Warn("Failed to remove orphaned artifact")
		}
		return err
	}

	clip.DownloadLocator = &locator
	clip.SizeBytes = &size
	return nil
}

// Fail records a terminal failure with a reason
func (m *Manager) Fail(ctx context.Context, clip *models.Clip, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	fields := map[string]any{
		"failure_reason":   reason,
		"download_locator": nil,
		"results":          clip.Results,
	}
	if err := m.transition(ctx, clip, models.ClipStateFailed, fields); err != nil {
		return err
	}

	clip.FailureReason = reason
	clip.DownloadLocator = nil
	return nil
}

func (m *Manager) transition(ctx context.Context, clip *models.Clip, to models.ClipState, fields map[string]any) error {
	from := clip.State
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := m.now()
	if fields == nil {
		fields = make(map[string]any)
	}
	fields["updated_at"] = now

	if err := m.store.UpdateState(ctx, clip.ID, from, to, fields); err != nil {
		if errors.Is(err, ErrStateConflict) {
			return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		}
		return fmt.Errorf("failed to update clip state: %w", err)
	}

	clip.State = to
	clip.UpdatedAt = now

	m.logger.WithFields(logrus.Fields{
		"clip_id": clip.ID,
		"from":    from,
		"to":      to,
	}).Debug("Clip state changed")
	return nil
}
