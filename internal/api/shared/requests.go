package shared

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ErrMissingFile is returned when a multipart request has no part for the
// requested form field.
var ErrMissingFile = errors.New("missing file field")

// FilePart returns the multipart part carrying field. The caller reads the
// part as a stream; the body is not buffered to memory or disk here.
func FilePart(r *http.Request, field string) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingFile
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart body: %w", err)
		}
		if part.FormName() == field && part.FileName() != "" {
			return part, nil
		}
		_ = part.Close()
	}
}
