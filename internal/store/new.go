package store

import (
	"path/filepath"
	"sync"

	"github.com/omnibrief/omnibrief/internal/logger"
)

type implStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger
}

// New creates a Store backed by a flat JSON file inside dataDir.
func New(dataDir string, log logger.Logger) Store {
	return &implStore{
		path:   filepath.Join(dataDir, "summaries.json"),
		logger: log,
	}
}
