package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// PDFLoader reads the PDF text layer with the pure-Go ledongthuc/pdf reader.
type PDFLoader struct {
	logger *slog.Logger
}

// NewPDFLoader creates a PDFLoader.
func NewPDFLoader(logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLoader{logger: logger}
}

// Load opens the PDF at path and returns one string per page. Pages without
// a text layer yield "" so page numbers stay aligned with the document. A
// document the reader cannot parse, including one that makes it panic, is
// reported as domain.ErrLoad.
func (l *PDFLoader) Load(ctx context.Context, path string) (pages []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", domain.ErrLoad, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.Warn("failed to close document", "error", cerr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("%w: malformed pdf: %v", domain.ErrLoad, r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat pdf: %w", domain.ErrLoad, err)
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", domain.ErrLoad, err)
	}

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLoad, err)
		}

		p := r.Page(i)
		if p.V.IsNull() {
			l.logger.Debug("page has no content", "page", i)
			pages = append(pages, "")
			continue
		}

		text, err := pageText(p)
		if err != nil {
			return nil, fmt.Errorf("%w: read page %d: %w", domain.ErrLoad, i, err)
		}
		pages = append(pages, text)
	}

	l.logger.Debug("document loaded", "backend", BackendNative, "pages", len(pages))
	return pages, nil
}

// pageText rebuilds lines from positioned text runs: rows top to bottom,
// runs left to right. It falls back to the plain content stream text when
// rows cannot be computed.
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed page: %v", r)
		}
	}()

	rows, err := p.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return p.GetPlainText(nil)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row.Content, func(i, j int) bool {
			return row.Content[i].X < row.Content[j].X
		})
		var b strings.Builder
		for k, run := range row.Content {
			// runs of one TJ array share an origin and are not word-separated
			if k > 0 && run.X != row.Content[k-1].X && needsSpace(b.String(), run.S) {
				b.WriteByte(' ')
			}
			b.WriteString(run.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}

// needsSpace reports whether two adjacent runs would otherwise fuse words.
func needsSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	last := []rune(prev)[len([]rune(prev))-1]
	first := []rune(next)[0]
	return !unicode.IsSpace(last) && !unicode.IsSpace(first)
}
