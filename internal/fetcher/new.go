package fetcher

import (
	"net/http"

	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/pkg/executor"
)

type implFetcher struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
	client   *http.Client
}

// New creates a new Fetcher instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		client:   http.DefaultClient,
	}
}

// NewWithClient creates a Fetcher with a custom HTTP client, used by tests.
func NewWithClient(cfg *config.Config, exec executor.Executor, log logger.Logger, client *http.Client) Fetcher {
	return &implFetcher{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		client:   client,
	}
}
