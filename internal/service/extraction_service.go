package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/task-extract-api/internal/domain"
	"github.com/phrazzld/task-extract-api/internal/output"
	"github.com/phrazzld/task-extract-api/internal/platform/metrics"
)

// DocumentLoader produces per-page text for a document on disk.
type DocumentLoader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// TaskExtractor turns page texts into task records.
type TaskExtractor interface {
	Extract(ctx context.Context, pages []string) (*domain.ExtractionResult, error)
}

// ExtractionService runs the load → extract → validate pipeline.
type ExtractionService interface {
	// ExtractUpload persists r to a transient file for the duration of the
	// extraction and removes it on every path.
	ExtractUpload(ctx context.Context, filename string, r io.Reader) (*domain.ExtractionResult, error)

	// ExtractFile runs the pipeline against a document already on disk.
	ExtractFile(ctx context.Context, path string) (*domain.ExtractionResult, error)
}

// ExtractionServiceConfig holds the upload settings of the service.
type ExtractionServiceConfig struct {
	// UploadDir receives transient copies; empty means os.TempDir().
	UploadDir string
	// MaxUploadBytes bounds an upload; zero or less disables the check.
	MaxUploadBytes int64
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const maxNameLength = 64

// extractionServiceImpl implements the ExtractionService interface
type extractionServiceImpl struct {
	loader    DocumentLoader
	extractor TaskExtractor
	cfg       ExtractionServiceConfig
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewExtractionService creates an ExtractionService. m may be nil to disable
// metrics.
func NewExtractionService(
	loader DocumentLoader,
	extractor TaskExtractor,
	cfg ExtractionServiceConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) (ExtractionService, error) {
	if loader == nil {
		return nil, fmt.Errorf("document loader cannot be nil")
	}
	if extractor == nil {
		return nil, fmt.Errorf("task extractor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionServiceImpl{
		loader:    loader,
		extractor: extractor,
		cfg:       cfg,
		metrics:   m,
		logger:    logger.With("component", "extraction_service"),
	}, nil
}

// ExtractUpload implements ExtractionService.
func (s *extractionServiceImpl) ExtractUpload(
	ctx context.Context,
	filename string,
	r io.Reader,
) (*domain.ExtractionResult, error) {
	start := time.Now()

	path, size, err := s.saveUpload(filename, r)
	if err != nil {
		s.metrics.ObserveFailure(metrics.OutcomeUploadFailure)
		return nil, NewExtractionServiceError("save_upload", "failed to save uploaded file", err)
	}
	defer s.removeTransient(path)

	s.logger.Debug("upload persisted", "filename", filename, "bytes", size)
	return s.run(ctx, path, start)
}

// ExtractFile implements ExtractionService.
func (s *extractionServiceImpl) ExtractFile(ctx context.Context, path string) (*domain.ExtractionResult, error) {
	return s.run(ctx, path, time.Now())
}

func (s *extractionServiceImpl) run(ctx context.Context, path string, start time.Time) (*domain.ExtractionResult, error) {
	pages, err := s.loader.Load(ctx, path)
	if err != nil {
		s.metrics.ObserveFailure(metrics.OutcomeLoadFailure)
		if !errors.Is(err, domain.ErrLoad) {
			err = fmt.Errorf("%w: %w", domain.ErrLoad, err)
		}
		return nil, NewExtractionServiceError("load_document", "failed to load document", err)
	}

	result, err := s.extractor.Extract(ctx, pages)
	if err == nil {
		err = output.Validate(result)
	}
	if err != nil {
		s.metrics.ObserveFailure(metrics.OutcomeProcessingFailure)
		if !errors.Is(err, domain.ErrProcessing) {
			err = fmt.Errorf("%w: %w", domain.ErrProcessing, err)
		}
		return nil, NewExtractionServiceError("extract_tasks", "failed to extract tasks", err)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveSuccess(result, elapsed)
	s.logger.Info("document processed",
		"pages", len(pages),
		"tasks", len(result.Tasks),
		"duplicates_skipped", result.Stats.DuplicatesSkipped,
		"duration_ms", elapsed.Milliseconds())

	return result, nil
}

// saveUpload copies r into a new file in the upload directory and returns
// its path. On error nothing is left behind.
func (s *extractionServiceImpl) saveUpload(filename string, r io.Reader) (path string, size int64, err error) {
	dir := s.cfg.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, fmt.Sprintf("upload-%s-*-%s", uuid.NewString(), sanitizeFilename(filename)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: create transient file: %w", domain.ErrUpload, err)
	}
	name := f.Name()

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close transient file: %w", domain.ErrUpload, cerr)
		}
		if err != nil {
			s.removeTransient(name)
			path, size = "", 0
		}
	}()

	src := r
	if s.cfg.MaxUploadBytes > 0 {
		src = io.LimitReader(r, s.cfg.MaxUploadBytes+1)
	}
	size, err = io.Copy(f, src)
	if err != nil {
		return "", 0, fmt.Errorf("%w: write transient file: %w", domain.ErrUpload, err)
	}
	if s.cfg.MaxUploadBytes > 0 && size > s.cfg.MaxUploadBytes {
		return "", 0, fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, s.cfg.MaxUploadBytes)
	}
	if size == 0 {
		return "", 0, domain.ErrEmptyUpload
	}
	return name, size, nil
}

func (s *extractionServiceImpl) removeTransient(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to remove transient upload", "error", err)
	}
}

// sanitizeFilename reduces a client-supplied name to a safe path suffix.
func sanitizeFilename(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if len(base) > maxNameLength {
		base = base[len(base)-maxNameLength:]
	}
	if base == "" || base == "." || base == "_" || base == "/" {
		return "document"
	}
	return base
}
