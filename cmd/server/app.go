package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/task-extract-api/internal/config"
	"github.com/phrazzld/task-extract-api/internal/document"
	"github.com/phrazzld/task-extract-api/internal/extract"
	"github.com/phrazzld/task-extract-api/internal/platform/metrics"
	"github.com/phrazzld/task-extract-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	loader    document.Loader
	extractor *extract.Extractor
	metrics   *metrics.Metrics

	extractionService service.ExtractionService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Upload.Dir != "" {
		if err := os.MkdirAll(cfg.Upload.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	var err error
	app.loader, err = document.NewLoader(document.LoaderConfig{
		Backend:       cfg.Extraction.Backend,
		PdftotextPath: cfg.Extraction.PdftotextPath,
	}, logger.With("component", "document_loader"))
	if err != nil {
		return nil, fmt.Errorf("failed to create document loader: %w", err)
	}
	logger.Info("Document loader initialized", "backend", cfg.Extraction.Backend)

	app.extractor = extract.New(
		logger.With("component", "task_extractor"),
		extract.WithWorkers(cfg.Extraction.Workers),
	)

	app.metrics = metrics.NewMetrics()

	app.extractionService, err = service.NewExtractionService(
		app.loader,
		app.extractor,
		service.ExtractionServiceConfig{
			UploadDir:      cfg.Upload.Dir,
			MaxUploadBytes: cfg.Upload.MaxBytes,
		},
		app.metrics,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
