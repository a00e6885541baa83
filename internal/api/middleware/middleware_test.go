package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-extract-api/internal/api/shared"
	"github.com/phrazzld/task-extract-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var traceID string
	handler := TraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotEmpty(t, traceID)

	started := logger.FindLogEntry(t, buf, "request started")
	require.NotNil(t, started)
	assert.Equal(t, traceID, started["trace_id"])
	assert.Equal(t, "/health", started["path"])

	inside := logger.FindLogEntry(t, buf, "inside handler")
	require.NotNil(t, inside)
	assert.Equal(t, traceID, inside["trace_id"])
}

func TestMaxBodyBytes(t *testing.T) {
	var readErr error
	handler := MaxBodyBytes(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	handler.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcd")))
	assert.NoError(t, readErr)

	handler.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcde")))
	var mbe *http.MaxBytesError
	assert.True(t, errors.As(readErr, &mbe))
}

func TestMaxBodyBytes_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h := MaxBodyBytes(0)(next)
	assert.NotNil(t, h)
}
