package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-extract-api/internal/domain"
	"github.com/phrazzld/task-extract-api/internal/extract"
)

// MockLoader is a mock implementation of DocumentLoader for testing
type MockLoader struct {
	LoadFn func(ctx context.Context, path string) ([]string, error)
	Calls  int
}

// Load implements DocumentLoader
func (m *MockLoader) Load(ctx context.Context, path string) ([]string, error) {
	m.Calls++
	if m.LoadFn != nil {
		return m.LoadFn(ctx, path)
	}
	return nil, nil
}

// MockExtractor is a mock implementation of TaskExtractor for testing
type MockExtractor struct {
	ExtractFn func(ctx context.Context, pages []string) (*domain.ExtractionResult, error)
	Calls     int
}

// Extract implements TaskExtractor
func (m *MockExtractor) Extract(ctx context.Context, pages []string) (*domain.ExtractionResult, error) {
	m.Calls++
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, pages)
	}
	return domain.NewExtractionResult(), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewExtractionService_Validation(t *testing.T) {
	_, err := NewExtractionService(nil, &MockExtractor{}, ExtractionServiceConfig{}, nil, testLogger())
	assert.Error(t, err)

	_, err = NewExtractionService(&MockLoader{}, nil, ExtractionServiceConfig{}, nil, testLogger())
	assert.Error(t, err)

	svc, err := NewExtractionService(&MockLoader{}, &MockExtractor{}, ExtractionServiceConfig{}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestExtractUpload_Success(t *testing.T) {
	dir := t.TempDir()

	var loadedPath string
	loader := &MockLoader{
		LoadFn: func(_ context.Context, path string) ([]string, error) {
			loadedPath = path
			data, err := os.ReadFile(path)
			require.NoError(t, err, "transient file must exist during load")
			// the fake document stores its pages separated by form feeds
			return strings.Split(string(data), "\f"), nil
		},
	}

	svc, err := NewExtractionService(loader, extract.New(testLogger()), ExtractionServiceConfig{
		UploadDir:      dir,
		MaxUploadBytes: 1 << 20,
	}, nil, testLogger())
	require.NoError(t, err)

	doc := "Task 1.01\nReplace Filter\nTime Required: 30 minutes\fTask 1.01\nDuplicate\fTask 2.02\nCheck Belt"
	res, err := svc.ExtractUpload(context.Background(), "../../manual v2.pdf", strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "Replace Filter", res.Tasks[0].Title)
	assert.Equal(t, "30 minutes", res.Tasks[0].Details.TimeRequired)
	assert.Equal(t, "2.02", res.Tasks[1].Number)
	assert.Equal(t, 1, res.Stats.DuplicatesSkipped)

	assert.Equal(t, dir, filepath.Dir(loadedPath))
	assert.True(t, strings.HasSuffix(loadedPath, "manual_v2.pdf"), loadedPath)
	assert.Empty(t, dirEntries(t, dir), "transient file must be removed")
}

func TestExtractUpload_Failures(t *testing.T) {
	loadErr := errors.New("xref table corrupt")

	tests := []struct {
		name         string
		body         string
		maxBytes     int64
		loadFn       func(ctx context.Context, path string) ([]string, error)
		extractFn    func(ctx context.Context, pages []string) (*domain.ExtractionResult, error)
		wantErr      error
		wantLoads    int
		wantExtracts int
	}{
		{
			name:     "empty upload",
			body:     "",
			maxBytes: 10,
			wantErr:  domain.ErrEmptyUpload,
		},
		{
			name:     "upload too large",
			body:     strings.Repeat("x", 11),
			maxBytes: 10,
			wantErr:  domain.ErrUploadTooLarge,
		},
		{
			name:     "load failure never reaches the extractor",
			body:     "%PDF-1.4 broken",
			maxBytes: 1024,
			loadFn: func(context.Context, string) ([]string, error) {
				return nil, loadErr
			},
			wantErr:   domain.ErrLoad,
			wantLoads: 1,
		},
		{
			name:     "processing failure",
			body:     "%PDF-1.4",
			maxBytes: 1024,
			loadFn: func(context.Context, string) ([]string, error) {
				return []string{"Task 1.1 x"}, nil
			},
			extractFn: func(context.Context, []string) (*domain.ExtractionResult, error) {
				return nil, errors.New("boom")
			},
			wantErr:      domain.ErrProcessing,
			wantLoads:    1,
			wantExtracts: 1,
		},
		{
			name:     "invalid envelope is a processing failure",
			body:     "%PDF-1.4",
			maxBytes: 1024,
			loadFn: func(context.Context, string) ([]string, error) {
				return []string{""}, nil
			},
			extractFn: func(context.Context, []string) (*domain.ExtractionResult, error) {
				res := domain.NewExtractionResult()
				res.Tasks = append(res.Tasks, domain.TaskRecord{Number: "not-a-number"})
				return res, nil
			},
			wantErr:      domain.ErrProcessing,
			wantLoads:    1,
			wantExtracts: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			loader := &MockLoader{LoadFn: tc.loadFn}
			extractor := &MockExtractor{ExtractFn: tc.extractFn}

			svc, err := NewExtractionService(loader, extractor, ExtractionServiceConfig{
				UploadDir:      dir,
				MaxUploadBytes: tc.maxBytes,
			}, nil, testLogger())
			require.NoError(t, err)

			res, err := svc.ExtractUpload(context.Background(), "doc.pdf", strings.NewReader(tc.body))
			require.Error(t, err)
			assert.Nil(t, res, "no partial result alongside an error")
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			assert.Equal(t, tc.wantLoads, loader.Calls)
			assert.Equal(t, tc.wantExtracts, extractor.Calls)
			assert.Empty(t, dirEntries(t, dir), "transient file must be removed")
		})
	}
}

func TestExtractUpload_MissingUploadDir(t *testing.T) {
	svc, err := NewExtractionService(&MockLoader{}, &MockExtractor{}, ExtractionServiceConfig{
		UploadDir: filepath.Join(t.TempDir(), "does", "not", "exist"),
	}, nil, testLogger())
	require.NoError(t, err)

	_, err = svc.ExtractUpload(context.Background(), "doc.pdf", strings.NewReader("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpload))

	var svcErr *ExtractionServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "save_upload", svcErr.Operation)
}

func TestExtractFile(t *testing.T) {
	loader := &MockLoader{
		LoadFn: func(_ context.Context, path string) ([]string, error) {
			assert.Equal(t, "/data/manual.pdf", path)
			return []string{"Task 4.2\nLubricate\nConsumables: grease"}, nil
		},
	}
	svc, err := NewExtractionService(loader, extract.New(testLogger()), ExtractionServiceConfig{}, nil, testLogger())
	require.NoError(t, err)

	res, err := svc.ExtractFile(context.Background(), "/data/manual.pdf")
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "grease", res.Tasks[0].Details.Consumables)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"manual.pdf":                      "manual.pdf",
		"../../etc/passwd":                "passwd",
		"my manual (v2).pdf":              "my_manual_v2_.pdf",
		"":                                "document",
		"/":                               "document",
		strings.Repeat("a", 100) + ".pdf": strings.Repeat("a", 60) + ".pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), "input %q", in)
	}
}

func TestNewExtractionServiceError(t *testing.T) {
	assert.Nil(t, NewExtractionServiceError("op", "msg", nil))
	assert.Equal(t, domain.ErrEmptyUpload, NewExtractionServiceError("op", "msg", domain.ErrEmptyUpload))

	err := NewExtractionServiceError("load_document", "failed", domain.ErrLoad)
	assert.True(t, errors.Is(err, domain.ErrLoad))
	assert.Contains(t, err.Error(), "load_document")
}
