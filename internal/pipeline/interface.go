package pipeline

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Pipeline is the top-level coordinator: it classifies the asset, runs
// extraction and normalization as needed, invokes the AI orchestrator once,
// and guarantees its own temporary artifacts are gone on every exit path.
// The input asset itself is the caller's to clean up.
type Pipeline interface {
	Process(ctx context.Context, asset model.MediaAsset) (model.ProcessResult, error)
}
