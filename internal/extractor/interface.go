package extractor

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Extractor turns a document or image file into content ready for the AI
// orchestrator. Audio and video never pass through here; the coordinator
// routes them to the normalizer instead.
type Extractor interface {
	Extract(ctx context.Context, path string, mimeType string) (model.Extraction, error)
}
