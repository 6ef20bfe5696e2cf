// -----------------------------------------------------------------------
// Application container - builds and owns every service
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/services/extraction"
	"github.com/ternarybob/lectio/internal/services/files"
	"github.com/ternarybob/lectio/internal/services/generation"
	"github.com/ternarybob/lectio/internal/services/router"
	"github.com/ternarybob/lectio/internal/services/scheduler"
	"github.com/ternarybob/lectio/internal/services/search"
	badgerstore "github.com/ternarybob/lectio/internal/storage/badger"
)

// App wires configuration, storage, and services together
type App struct {
	Config  *common.Config
	Logger  arbor.ILogger
	Storage interfaces.StorageManager

	Provider   generation.Provider
	Extraction interfaces.ExtractionService
	Router     interfaces.RouterService
	Search     interfaces.SearchService
	Files      *files.Service
	Cleanup    *scheduler.Cleanup
}

// New builds the application from configuration
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	storage, err := badgerstore.NewManager(&cfg.Storage.Badger, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	provider, err := generation.NewProvider(ctx, &cfg.Generation, logger)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to initialize generation provider: %w", err)
	}

	fileService, err := files.NewService(&cfg.Uploads, storage.FileStorage(), logger)
	if err != nil {
		storage.Close()
		return nil, err
	}

	selector := generation.NewSelector(provider, cfg.Generation.AttemptTimeoutDuration(), cfg.Extraction.ContentFloor, logger)

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Storage:    storage,
		Provider:   provider,
		Extraction: extraction.NewService(cfg, selector, logger),
		Router:     router.NewService(provider, storage.HistoryStorage(), cfg.Generation.RouterModel, logger),
		Search:     search.NewService(&cfg.Search, provider, cfg.Generation.RouterModel, logger),
		Files:      fileService,
	}
	a.Cleanup = scheduler.NewCleanup(&cfg.Uploads, fileService, logger)

	logger.Info().
		Str("provider", cfg.Generation.Provider).
		Str("document_model", cfg.Generation.DocumentModel).
		Str("router_model", cfg.Generation.RouterModel).
		Msg("Application initialized")

	return a, nil
}

// Close releases provider and storage resources
func (a *App) Close() error {
	if a.Cleanup != nil {
		a.Cleanup.Stop()
	}
	if a.Provider != nil {
		if err := a.Provider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Provider close failed")
		}
	}
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
