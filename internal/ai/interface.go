package ai

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Orchestrator routes extracted content to the right model pathway and
// coerces whatever comes back into the canonical SummaryResult. It never
// returns an error: model-side failures degrade into a result whose summary
// describes what went wrong, so the caller always has something to persist.
type Orchestrator interface {
	Summarize(ctx context.Context, ext model.Extraction, fileType string) model.SummaryResult
}

// TextModel generates a completion for a text prompt. strictJSON asks the
// provider to validate the response as a JSON object; callers retry once
// without it when the strict call fails.
type TextModel interface {
	Complete(ctx context.Context, prompt string, strictJSON bool) (string, error)
}

// VisionModel describes an inline base64 image.
type VisionModel interface {
	Describe(ctx context.Context, prompt, base64Image, mimeType string) (string, error)
}

// MediaModel analyzes an audio file natively, including chapters and
// speakers. Available reports whether the provider is configured at all.
type MediaModel interface {
	Available() bool
	Analyze(ctx context.Context, prompt, path, mimeType string) (string, error)
}

// Transcriber converts speech audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}
