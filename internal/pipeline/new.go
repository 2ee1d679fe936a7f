package pipeline

import (
	"github.com/omnibrief/omnibrief/internal/ai"
	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/extractor"
	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/internal/normalizer"
)

type implPipeline struct {
	cfg          *config.Config
	extractor    extractor.Extractor
	normalizer   normalizer.Normalizer
	orchestrator ai.Orchestrator
	logger       logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, ext extractor.Extractor, norm normalizer.Normalizer, orch ai.Orchestrator, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:          cfg,
		extractor:    ext,
		normalizer:   norm,
		orchestrator: orch,
		logger:       log,
	}
}
