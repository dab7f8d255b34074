package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStage(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ObserveStage("transcription", 200*time.Millisecond, nil)
	r.ObserveStage("transcription", time.Second, errors.New("boom"))
	r.ObserveStage("synthesis", time.Second, context.DeadlineExceeded)

	if got := testutil.ToFloat64(r.stageTotal.WithLabelValues("transcription", "ok")); got != 1 {
		t.Fatalf("expected 1 ok transcription, got %v", got)
	}
	if got := testutil.ToFloat64(r.stageTotal.WithLabelValues("transcription", "error")); got != 1 {
		t.Fatalf("expected 1 failed transcription, got %v", got)
	}
	if got := testutil.ToFloat64(r.stageTotal.WithLabelValues("synthesis", "timeout")); got != 1 {
		t.Fatalf("expected 1 timed out synthesis, got %v", got)
	}
	if got := testutil.CollectAndCount(r.stageDuration); got != 2 {
		t.Fatalf("expected 2 stage histograms, got %d", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ObserveRequest("/translate", http.StatusOK, 50*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `voxbridge_http_requests_total{route="/translate",status="200"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
}
