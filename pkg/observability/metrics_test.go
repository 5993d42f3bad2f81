package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"beitrag_requests_total":           false,
		"beitrag_request_duration_seconds": false,
		"beitrag_auth_failures_total":      false,
		"beitrag_ai_generation_seconds":    false,
		"beitrag_image_uploads_total":      false,
	}

	// Counters and histograms only appear after first observation, so seed
	// every metric before gathering.
	RequestsTotal.WithLabelValues("GET", "2xx").Inc()
	RequestDuration.WithLabelValues("GET").Observe(0.1)
	AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
	GenerationDuration.Observe(0.1)
	ImageUploadsTotal.WithLabelValues("ok").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("metric %q not found in default registry", name)
		}
	}
}

// TestMiddlewareRecordsRequestCount verifies that the middleware increments
// the request counter for each served request.
func TestMiddlewareRecordsRequestCount(t *testing.T) {
	before := counterValue(t, RequestsTotal, "GET", "2xx")

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := counterValue(t, RequestsTotal, "GET", "2xx")
	if after-before != 1 {
		t.Errorf("expected request count to increase by 1, got delta=%f", after-before)
	}
}

// TestMiddlewareRecordsDuration verifies that the middleware records
// a request duration observation.
func TestMiddlewareRecordsDuration(t *testing.T) {
	before := histogramCount(t, RequestDuration, "POST")

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := histogramCount(t, RequestDuration, "POST")
	if after-before != 1 {
		t.Errorf("expected histogram sample count to increase by 1, got delta=%d", after-before)
	}
}

// TestMiddlewareCapturesStatusCode verifies that non-200 status codes are
// captured correctly in the status label.
func TestMiddlewareCapturesStatusCode(t *testing.T) {
	before := counterValue(t, RequestsTotal, "POST", "4xx")

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest("POST", "/api/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := counterValue(t, RequestsTotal, "POST", "4xx")
	if after-before != 1 {
		t.Errorf("expected 4xx count to increase by 1, got delta=%f", after-before)
	}
}

// TestStatusWriterFlush verifies that the statusWriter Flush method
// delegates to the underlying writer when it implements http.Flusher.
func TestStatusWriterFlush(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.Flush()

	if !rec.Flushed {
		t.Error("expected underlying writer to be flushed")
	}
}

// counterValue reads the current value of a CounterVec for the given labels.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting counter metric: %v", err)
	}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing counter metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

// histogramCount reads the observation count from a HistogramVec.
func histogramCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	obs, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting histogram metric: %v", err)
	}
	if err := obs.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing histogram metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
