package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

func TestNewMetrics_Singleton(t *testing.T) {
	assert.Same(t, NewMetrics(), NewMetrics())
}

func TestObserveSuccess(t *testing.T) {
	m := NewMetrics()

	successBefore := testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeSuccess))
	tasksBefore := testutil.ToFloat64(m.TasksExtractedTotal)
	dupBefore := testutil.ToFloat64(m.DuplicateTasksTotal)
	pagesBefore := testutil.ToFloat64(m.PagesSkippedTotal)
	invalidBefore := testutil.ToFloat64(m.InvalidMarkersTotal)

	res := domain.NewExtractionResult()
	res.Tasks = append(res.Tasks, domain.TaskRecord{Number: "1.1"}, domain.TaskRecord{Number: "1.2"})
	res.Stats = domain.ExtractionStats{PagesScanned: 4, PagesWithoutMarkers: 2, DuplicatesSkipped: 3, InvalidMarkers: 1}

	m.ObserveSuccess(res, 25*time.Millisecond)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, tasksBefore+2, testutil.ToFloat64(m.TasksExtractedTotal))
	assert.Equal(t, dupBefore+3, testutil.ToFloat64(m.DuplicateTasksTotal))
	assert.Equal(t, pagesBefore+2, testutil.ToFloat64(m.PagesSkippedTotal))
	assert.Equal(t, invalidBefore+1, testutil.ToFloat64(m.InvalidMarkersTotal))
}

func TestObserveFailure(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeLoadFailure))
	m.ObserveFailure(OutcomeLoadFailure)
	assert.Equal(t, before+1, testutil.ToFloat64(m.ExtractionsTotal.WithLabelValues(OutcomeLoadFailure)))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSuccess(domain.NewExtractionResult(), time.Second)
		m.ObserveFailure(OutcomeProcessingFailure)
	})
}

func TestHandler(t *testing.T) {
	NewMetrics().ObserveFailure(OutcomeUploadFailure)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskapi_extractions_total")
}
