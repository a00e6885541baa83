package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/task-extract-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-extract-api/internal/api/middleware"
	"github.com/phrazzld/task-extract-api/internal/platform/metrics"
)

// multipartOverhead is the allowance for multipart boundaries and part
// headers on top of the configured upload size.
const multipartOverhead = 1 << 20

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	extractionHandler := api.NewExtractionHandler(app.extractionService, app.logger)

	r.Get("/", extractionHandler.Root)

	r.Route("/extract-tasks", func(r chi.Router) {
		r.Use(apiMiddleware.MaxBodyBytes(app.config.Upload.MaxBytes + multipartOverhead))
		r.Post("/", extractionHandler.ExtractTasks)
		r.Post("/xlsx", extractionHandler.ExtractTasksXLSX)
	})

	r.Handle("/metrics", metrics.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
