package ai

import (
	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/logger"
)

type implOrchestrator struct {
	text        TextModel
	vision      VisionModel
	media       MediaModel
	transcriber Transcriber
	logger      logger.Logger
}

// New creates an Orchestrator wired to Groq (text, vision, transcription)
// with Gemini as the primary multimodal media provider.
func New(cfg *config.Config, log logger.Logger) Orchestrator {
	groq := newGroqClient(cfg.Groq, log)
	gemini := newGeminiClient(cfg.Gemini, log)

	return &implOrchestrator{
		text:        groq,
		vision:      groq,
		media:       gemini,
		transcriber: groq,
		logger:      log,
	}
}
