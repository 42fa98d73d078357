package features

import (
	"context"

	"github.com/killallgit/clipper-api/internal/models"
)

// Input is the clip context handed to each stage
type Input struct {
	ClipID    string
	SourceRef string
	StartTime float64
	EndTime   *float64
	Metadata  models.SourceMetadata
}

// Outcome is what a stage reports back for one feature
type Outcome struct {
	Description string
	Confidence  float64
}

// Stage produces an outcome for one feature identifier. Implementations
// must honor ctx cancellation; the executor abandons a stage at its deadline.
type Stage interface {
	Apply(ctx context.Context, desc Descriptor, in Input) (Outcome, error)
}

// StageFunc adapts a function to the Stage interface
type StageFunc func(ctx context.Context, desc Descriptor, in Input) (Outcome, error)

// Apply calls f
func (f StageFunc) Apply(ctx context.Context, desc Descriptor, in Input) (Outcome, error) {
	return f(ctx, desc, in)
}

// CannedStage reports the descriptor's own outcome and baseline confidence
type CannedStage struct{}

// Apply returns the descriptor outcome unless ctx is already done
func (CannedStage) Apply(ctx context.Context, desc Descriptor, in Input) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	return Outcome{Description: desc.Outcome, Confidence: desc.Confidence}, nil
}
