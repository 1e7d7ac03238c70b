package metrics_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/gin-gonic/gin"
)

func TestCountersAndReset(t *testing.T) {
	metrics.Reset()

	metrics.IncrementFilterEvaluations()
	metrics.IncrementFilterEvaluations()
	metrics.IncrementLocationFallbacks()
	metrics.IncrementLocationResolved()
	metrics.IncrementSnapshots()
	metrics.IncrementSnapshotFails()
	metrics.SetActiveSessions(3)

	if got := metrics.GetFilterEvaluations(); got != 2 {
		t.Fatalf("expected 2 filter evaluations, got %d", got)
	}
	if metrics.GetLocationFallbacks() != 1 || metrics.GetLocationResolved() != 1 {
		t.Fatal("location counters not recorded")
	}
	if metrics.GetSnapshots() != 1 || metrics.GetSnapshotFails() != 1 {
		t.Fatal("snapshot counters not recorded")
	}
	if metrics.GetActiveSessions() != 3 {
		t.Fatalf("expected 3 sessions, got %d", metrics.GetActiveSessions())
	}

	metrics.Reset()
	if metrics.GetFilterEvaluations() != 0 || metrics.GetActiveSessions() != 0 {
		t.Fatal("reset did not clear counters")
	}
}

func TestLatencyAverageAndPeak(t *testing.T) {
	metrics.Reset()

	for _, l := range []int64{100, 300} {
		metrics.RecordEventProcessed()
		metrics.RecordLatency(l)
	}
	metrics.RecordEventFailed()

	sys := metrics.GetSystemMetrics()
	if sys["average_latency_micros"] != 200 {
		t.Fatalf("expected average 200, got %d", sys["average_latency_micros"])
	}
	if sys["peak_latency_micros"] != 300 {
		t.Fatalf("expected peak 300, got %d", sys["peak_latency_micros"])
	}
	if sys["error_rate"] != 50 {
		t.Fatalf("expected error rate 50, got %d", sys["error_rate"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.Reset()
	metrics.IncrementFilterEvaluations()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", metrics.NewHandler().Metrics)

	req := httptest.NewRequest("GET", "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != 200 {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["filter_evaluations_total"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["events"].(map[string]interface{}); !ok {
		t.Fatalf("missing events section: %v", body)
	}
}
