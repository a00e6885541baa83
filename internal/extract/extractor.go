package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// Extractor converts page texts into an ordered, deduplicated task list.
// An Extractor holds no per-run state and is safe for concurrent use.
type Extractor struct {
	logger  *slog.Logger
	workers int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWorkers sets how many pages are scanned concurrently. Values below 1
// mean sequential scanning. Output order and deduplication are unaffected.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		logger:  logger,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans pages in order and returns every task found, first
// occurrence of each task number winning. Pages without markers and markers
// without a number are skipped. The returned error, if any, wraps
// domain.ErrProcessing and no partial result is returned with it.
func (e *Extractor) Extract(ctx context.Context, pages []string) (*domain.ExtractionResult, error) {
	start := time.Now()

	scans, err := e.scanPages(ctx, pages)
	if err != nil {
		return nil, err
	}

	result := domain.NewExtractionResult()
	seen := make(map[string]struct{})
	for _, scan := range scans {
		seen = e.mergePage(seen, scan, result)
	}
	result.Stats.PagesScanned = len(pages)

	e.logger.Debug("extraction complete",
		"pages", len(pages),
		"tasks", len(result.Tasks),
		"duplicates_skipped", result.Stats.DuplicatesSkipped,
		"pages_without_markers", result.Stats.PagesWithoutMarkers,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// scanPages runs scanPage over every page, concurrently when more than one
// worker is configured. Results are indexed by page so order is preserved.
func (e *Extractor) scanPages(ctx context.Context, pages []string) ([]pageScan, error) {
	scans := make([]pageScan, len(pages))

	if e.workers <= 1 || len(pages) <= 1 {
		for i, text := range pages {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrProcessing, err)
			}
			scan, err := safeScan(i+1, text)
			if err != nil {
				return nil, err
			}
			scans[i] = scan
		}
		return scans, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, text := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrProcessing, err)
			}
			scan, err := safeScan(i+1, text)
			if err != nil {
				return err
			}
			scans[i] = scan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scans, nil
}

// safeScan converts a panic during scanning into a processing error.
func safeScan(page int, text string) (scan pageScan, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: page %d: %v", domain.ErrProcessing, page, r)
		}
	}()
	return scanPage(page, text), nil
}

// mergePage appends the page's new tasks to result and returns the updated
// seen set. It must be called for pages in ascending page order.
func (e *Extractor) mergePage(
	seen map[string]struct{},
	scan pageScan,
	result *domain.ExtractionResult,
) map[string]struct{} {
	if len(scan.blocks) == 0 {
		result.Stats.PagesWithoutMarkers++
		e.logger.Info("page has no task markers", "page", scan.page)
		return seen
	}

	for _, block := range scan.blocks {
		if block.number == "" {
			result.Stats.InvalidMarkers++
			e.logger.Warn("task marker without number",
				"page", scan.page,
				"marker", block.marker)
			continue
		}

		if _, dup := seen[block.number]; dup {
			result.Stats.DuplicatesSkipped++
			e.logger.Info("duplicate task skipped",
				"page", scan.page,
				"task_number", block.number)
			continue
		}
		seen[block.number] = struct{}{}

		result.Tasks = append(result.Tasks, block.record)
		e.logger.Info("task extracted",
			"page", scan.page,
			"task_number", block.number,
			"task_title", block.record.Title)
	}
	return seen
}
