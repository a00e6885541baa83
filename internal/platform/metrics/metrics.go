// Package metrics exposes Prometheus collectors for the extraction pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

// Extraction outcomes used as the "outcome" label.
const (
	OutcomeSuccess           = "success"
	OutcomeUploadFailure     = "upload_failure"
	OutcomeLoadFailure       = "load_failure"
	OutcomeProcessingFailure = "processing_failure"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for document extraction.
type Metrics struct {
	ExtractionsTotal    *prometheus.CounterVec
	TasksExtractedTotal prometheus.Counter
	DuplicateTasksTotal prometheus.Counter
	PagesSkippedTotal   prometheus.Counter
	InvalidMarkersTotal prometheus.Counter
	ExtractionDuration  prometheus.Histogram
}

// NewMetrics creates and registers the extraction metrics with the default
// registry. Registration happens once per process; later calls return the
// same collectors.
//
// Metrics:
//   - taskapi_extractions_total{outcome} - extraction requests by outcome
//   - taskapi_tasks_extracted_total - task records returned
//   - taskapi_duplicate_tasks_total - repeated task markers dropped
//   - taskapi_pages_skipped_total - pages without any task marker
//   - taskapi_invalid_markers_total - markers without a parseable number
//   - taskapi_extraction_duration_seconds - load plus extraction time
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			ExtractionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "taskapi_extractions_total",
					Help: "Total number of document extractions by outcome",
				},
				[]string{"outcome"},
			),
			TasksExtractedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "taskapi_tasks_extracted_total",
				Help: "Total number of task records extracted",
			}),
			DuplicateTasksTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "taskapi_duplicate_tasks_total",
				Help: "Total number of duplicate task markers skipped",
			}),
			PagesSkippedTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "taskapi_pages_skipped_total",
				Help: "Total number of pages without task markers",
			}),
			InvalidMarkersTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "taskapi_invalid_markers_total",
				Help: "Total number of task markers without a parseable number",
			}),
			ExtractionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "taskapi_extraction_duration_seconds",
				Help:    "Duration of document load and task extraction in seconds",
				Buckets: prometheus.DefBuckets,
			}),
		}
	})
	return globalMetrics
}

// ObserveSuccess records a completed extraction. A nil receiver is a no-op.
func (m *Metrics) ObserveSuccess(result *domain.ExtractionResult, elapsed time.Duration) {
	if m == nil || result == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.TasksExtractedTotal.Add(float64(len(result.Tasks)))
	m.DuplicateTasksTotal.Add(float64(result.Stats.DuplicatesSkipped))
	m.PagesSkippedTotal.Add(float64(result.Stats.PagesWithoutMarkers))
	m.InvalidMarkersTotal.Add(float64(result.Stats.InvalidMarkers))
	m.ExtractionDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a failed extraction. A nil receiver is a no-op.
func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
