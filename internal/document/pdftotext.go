package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// PdftotextLoader extracts page text with poppler's pdftotext binary.
type PdftotextLoader struct {
	binary string
	runner Runner
	logger *slog.Logger
}

// NewPdftotextLoader creates a loader that runs binary, or "pdftotext" when
// binary is empty.
func NewPdftotextLoader(binary string, logger *slog.Logger) *PdftotextLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if binary == "" {
		binary = "pdftotext"
	}
	return &PdftotextLoader{
		binary: binary,
		runner: execRunner{logger: logger},
		logger: logger,
	}
}

// WithRunner replaces the command runner.
func (l *PdftotextLoader) WithRunner(r Runner) *PdftotextLoader {
	l.runner = r
	return l
}

// Load runs `pdftotext -enc UTF-8 -eol unix <path> -` and splits its output
// on form feeds, which pdftotext writes after every page.
func (l *PdftotextLoader) Load(ctx context.Context, path string) ([]string, error) {
	out, errb, err := l.runner.Run(ctx, l.binary, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		msg := strings.TrimSpace(string(errb))
		if msg == "" {
			return nil, fmt.Errorf("%w: pdftotext: %w", domain.ErrLoad, err)
		}
		return nil, fmt.Errorf("%w: pdftotext: %w: %s", domain.ErrLoad, err, truncate(msg, 512))
	}

	pages := splitPages(string(out))
	l.logger.Debug("document loaded", "backend", BackendPdftotext, "pages", len(pages))
	return pages, nil
}

// splitPages turns form-feed separated output into pages. The terminating
// form feed after the last page does not start a new page.
func splitPages(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\f")
	return strings.Split(text, "\f")
}
