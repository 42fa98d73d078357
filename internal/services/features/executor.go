package features

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxConcurrency = 4
	DefaultStageTimeout   = 15 * time.Second
)

// Executor runs the requested feature stages for one clip
type Executor struct {
	registry       Registry
	stages         map[string]Stage
	fallback       Stage
	maxConcurrency int
	stageTimeout   time.Duration
	now            func() time.Time
	logger         *logrus.Entry
}

// ExecutorOption is a functional option for configuring the executor
type ExecutorOption func(*Executor)

// WithStage routes a feature identifier to a specific stage implementation
func WithStage(id string, stage Stage) ExecutorOption {
	return func(e *Executor) {
		if stage != nil {
			e.stages[id] = stage
		}
	}
}

// WithMaxConcurrency bounds how many stages run at once
func WithMaxConcurrency(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.maxConcurrency = n
		}
	}
}

// WithStageTimeout sets the deadline applied to each stage
func WithStageTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.stageTimeout = d
		}
	}
}

// WithClock overrides the time source used for AppliedAt
func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExecutor creates an executor over registry. Features without a
// dedicated stage use CannedStage.
func NewExecutor(registry Registry, opts ...ExecutorOption) *Executor {
	e := &Executor{
		registry:       registry,
		stages:         make(map[string]Stage),
		fallback:       CannedStage{},
		maxConcurrency: DefaultMaxConcurrency,
		stageTimeout:   DefaultStageTimeout,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logging.WithComponent("features"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run applies every requested feature and returns one result per id in
// request order. Stage errors, timeouts and panics become zero-confidence
// results; Run itself never fails.
func (e *Executor) Run(ctx context.Context, ids []string, in Input) []models.FeatureStageResult {
	results := make([]models.FeatureStageResult, len(ids))

	var g errgroup.Group
	g.SetLimit(e.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = e.runOne(ctx, id, in)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Executor) runOne(ctx context.Context, id string, in Input) models.FeatureStageResult {
	desc := e.registry.Lookup(id)
	stage, ok := e.stages[id]
	if !ok {
		stage = e.fallback
	}

	out, err := e.apply(ctx, stage, desc, in)
	result := models.FeatureStageResult{
		FeatureID: id,
		Name:      desc.Name,
		AppliedAt: e.now(),
	}
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"clip_id":    in.ClipID,
			"feature_id": id,
		}).WithError(err).Warn("feature stage failed")
		result.Outcome = "Stage failed: " + failureReason(err)
		result.Confidence = 0
		return result
	}

	result.Outcome = out.Description
	result.Confidence = clamp(out.Confidence)
	return result
}

type stageReturn struct {
	out Outcome
	err error
}

func (e *Executor) apply(ctx context.Context, stage Stage, desc Descriptor, in Input) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, e.stageTimeout)
	defer cancel()

	done := make(chan stageReturn, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- stageReturn{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out, err := stage.Apply(ctx, desc, in)
		done <- stageReturn{out: out, err: err}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
