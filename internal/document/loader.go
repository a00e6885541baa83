package document

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by NewLoader.
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
)

// Loader produces the text of each page of a document, in page order.
// Every error returned wraps domain.ErrLoad.
type Loader interface {
	Load(ctx context.Context, path string) ([]string, error)
}

// LoaderConfig selects and configures a Loader implementation.
type LoaderConfig struct {
	Backend       string
	PdftotextPath string
}

// NewLoader returns the Loader for cfg.Backend. An empty backend selects the
// native PDF reader.
func NewLoader(cfg LoaderConfig, logger *slog.Logger) (Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case "", BackendNative:
		return NewPDFLoader(logger), nil
	case BackendPdftotext:
		return NewPdftotextLoader(cfg.PdftotextPath, logger), nil
	default:
		return nil, fmt.Errorf("unknown document backend %q", cfg.Backend)
	}
}
