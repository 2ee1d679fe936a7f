package normalizer

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Normalizer transcodes audio/video input into the canonical speech-optimized
// audio artifact that fits the provider's inline-payload ceiling.
type Normalizer interface {
	// NeedsNormalization reports whether the input must be transcoded before
	// the AI call: video always, audio only when over the inline ceiling.
	NeedsNormalization(mimeType string, size int64) bool

	// Normalize transcodes inputPath into outputPath. The caller owns
	// outputPath and is responsible for deleting it.
	Normalize(ctx context.Context, inputPath, outputPath string) (model.PreparedAudio, error)
}
