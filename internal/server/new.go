package server

import (
	"github.com/omnibrief/omnibrief/internal/auth"
	"github.com/omnibrief/omnibrief/internal/config"
	"github.com/omnibrief/omnibrief/internal/fetcher"
	"github.com/omnibrief/omnibrief/internal/logger"
	"github.com/omnibrief/omnibrief/internal/pipeline"
	"github.com/omnibrief/omnibrief/internal/store"
)

type Server struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	fetcher  fetcher.Fetcher
	store    store.Store
	verifier auth.Verifier
	logger   logger.Logger
}

// New creates a new Server instance
func New(cfg *config.Config, pipe pipeline.Pipeline, fetch fetcher.Fetcher, st store.Store, verifier auth.Verifier, log logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: pipe,
		fetcher:  fetch,
		store:    st,
		verifier: verifier,
		logger:   log,
	}
}
