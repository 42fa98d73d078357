// Package cleanup fails clips that were abandoned mid-processing, for
// example by a crash or restart, so no clip stays in processing forever.
package cleanup

import (
	"context"
	"errors"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/internal/services/lifecycle"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
)

// FailureReason is recorded on swept clips
const FailureReason = "timeout"

const batchSize = 100

// StaleFinder lists clips stuck in a non-terminal state
type StaleFinder interface {
	FindStale(ctx context.Context, states []models.ClipState, olderThan time.Time, limit int) ([]*models.Clip, error)
}

// Service periodically sweeps stale clips
type Service struct {
	finder     StaleFinder
	lifecycle  *lifecycle.Manager
	staleAfter time.Duration
	interval   time.Duration
	now        func() time.Time
	cancel     context.CancelFunc
	done       chan struct{}
	logger     *logrus.Entry
}

// NewService creates a new cleanup service
func NewService(finder StaleFinder, mgr *lifecycle.Manager, staleAfter, interval time.Duration) *Service {
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Service{
		finder:     finder,
		lifecycle:  mgr,
		staleAfter: staleAfter,
		interval:   interval,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logging.WithComponent("cleanup"),
	}
}

// Start runs an initial sweep and then sweeps on every tick until ctx is
// done or Stop is called
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.sweepAndLog(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweepAndLog(ctx)
			case <-ctx.Done():
				s.logger.Info("Cleanup service stopped")
				return
			}
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"interval":    s.interval.String(),
		"stale_after": s.staleAfter.String(),
	}).Info("Cleanup service started")
}

// Stop stops the sweeper and waits for the loop to exit
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
}

func (s *Service) sweepAndLog(ctx context.Context) {
	n, err := s.Sweep(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WithError(err).Error("Stale clip sweep failed")
		return
	}
	if n > 0 {
		s.logger.WithField("count", n).Warn("Failed stale clips")
	}
}

// Sweep fails every clip left in created or processing for longer than the
// stale threshold and returns how many were failed. Clips that finish while
// the sweep runs are skipped.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.staleAfter)
	stale, err := s.finder.FindStale(ctx,
		[]models.ClipState{models.ClipStateCreated, models.ClipStateProcessing},
		cutoff, batchSize)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, clip := range stale {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		log := s.logger.WithField("clip_id", clip.ID)

		if clip.State == models.ClipStateCreated {
			if err := s.lifecycle.Start(ctx, clip); err != nil {
				log.WithError(err).Debug("Skipping stale clip")
				continue
			}
		}
		if err := s.lifecycle.Fail(ctx, clip, FailureReason); err != nil {
			log.WithError(err).Debug("Skipping stale clip")
			continue
		}
		failed++
	}
	return failed, nil
}
