package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/task-extract-api/internal/config"
	"github.com/phrazzld/task-extract-api/internal/document"
	"github.com/phrazzld/task-extract-api/internal/domain"
	"github.com/phrazzld/task-extract-api/internal/extract"
	"github.com/phrazzld/task-extract-api/internal/output"
	"github.com/phrazzld/task-extract-api/internal/platform/logger"
	"github.com/phrazzld/task-extract-api/internal/service"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

type extractOptions struct {
	format        string
	out           string
	backend       string
	pdftotextPath string
	workers       int
	logLevel      string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract tasks from a PDF file",
		Long: `Extract tasks from a PDF file and print them as JSON, or write them to a
spreadsheet.

Examples:
  # Print tasks as JSON
  taskextract extract manual.pdf

  # Write a spreadsheet
  taskextract extract manual.pdf --format xlsx --out tasks.xlsx

  # Use poppler's pdftotext and scan pages in parallel
  taskextract extract manual.pdf --backend pdftotext --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or xlsx")
	flags.StringVarP(&opts.out, "out", "o", "", "output file (required for xlsx; json defaults to stdout)")
	flags.StringVar(&opts.backend, "backend", config.DefaultBackend, "document backend: native or pdftotext")
	flags.StringVar(&opts.pdftotextPath, "pdftotext-path", config.DefaultPdftotextPath, "pdftotext binary")
	flags.IntVarP(&opts.workers, "workers", "w", config.DefaultWorkers, "goroutines scanning pages")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	return cmd
}

func (o *extractOptions) validate() error {
	switch o.format {
	case formatJSON:
	case formatXLSX:
		if o.out == "" {
			return errors.New("--out is required for xlsx output")
		}
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
	if o.workers < 1 {
		return errors.New("--workers must be at least 1")
	}
	return nil
}

func runExtract(cmd *cobra.Command, opts *extractOptions, path string) error {
	if err := opts.validate(); err != nil {
		return err
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: opts.logLevel, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	loader, err := document.NewLoader(document.LoaderConfig{
		Backend:       opts.backend,
		PdftotextPath: opts.pdftotextPath,
	}, log.With("component", "document_loader"))
	if err != nil {
		return err
	}

	svc, err := service.NewExtractionService(
		loader,
		extract.New(log.With("component", "task_extractor"), extract.WithWorkers(opts.workers)),
		service.ExtractionServiceConfig{},
		nil,
		log,
	)
	if err != nil {
		return err
	}

	result, err := svc.ExtractFile(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	if opts.format == formatXLSX {
		return writeXLSX(cmd, result, opts.out)
	}
	return writeJSON(cmd, result, opts.out)
}

func writeJSON(cmd *cobra.Command, result *domain.ExtractionResult, out string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	data = append(data, '\n')

	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func writeXLSX(cmd *cobra.Command, result *domain.ExtractionResult, out string) error {
	data, err := output.WriteXLSX(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d tasks to %s\n", len(result.Tasks), out)
	return err
}
