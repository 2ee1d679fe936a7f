package extractor

import (
	"github.com/omnibrief/omnibrief/internal/logger"
)

type implExtractor struct {
	logger logger.Logger
}

// New creates a new Extractor instance
func New(log logger.Logger) Extractor {
	return &implExtractor{
		logger: log,
	}
}
