package main

import (
	"context"
	"fmt"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/content"
	"github.com/igusev/sitesearch/internal/history"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/provider"
	"github.com/igusev/sitesearch/internal/storage"
)

// session wires storage, recent searches and the search provider for one run
type session struct {
	cfg       *config.Config
	store     storage.Store
	history   *history.History
	generator *content.Generator
	provider  *provider.Provider
}

func openSession(cfg *config.Config) (*session, error) {
	gen, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}

	settings := cfg.StorageSettings()
	store, err := storage.Open(settings)
	if err != nil {
		// Recent searches still work, they just aren't kept after exit
		logger.Warn("Recent searches will not be saved: %v", err)
		store = storage.NewMemoryStore()
	} else {
		logger.Debug("Storage: %s at %s", settings.Driver, settings.Path)
	}

	hist := history.New(store)
	p := provider.New(provider.Options{
		Generator:    gen,
		History:      hist,
		Popular:      cfg.Search.Popular,
		BuildTimeout: cfg.Search.GetBuildTimeout(),
	})

	return &session{
		cfg:       cfg,
		store:     store,
		history:   hist,
		generator: gen,
		provider:  p,
	}, nil
}

// loadHistory reads recent searches synchronously (non-interactive commands)
func (s *session) loadHistory() {
	if err := s.history.Load(); err != nil {
		logger.Debug("Failed to load recent searches: %v", err)
	}
}

// ready builds the index and waits for it
func (s *session) ready(ctx context.Context) error {
	s.provider.Start(ctx)
	if err := s.provider.Wait(ctx); err != nil {
		return fmt.Errorf("search index unavailable: %w", err)
	}
	return nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		logger.Debug("Failed to close storage: %v", err)
	}
}
