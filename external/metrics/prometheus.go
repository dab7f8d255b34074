package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeTimeout = "timeout"
)

// PrometheusRecorder registers on a private registry, not the global default.
type PrometheusRecorder struct {
	registry        *prometheus.Registry
	stageDuration   *prometheus.HistogramVec
	stageTotal      *prometheus.CounterVec
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voxbridge_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		stageTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voxbridge_stage_total",
				Help: "Pipeline stage executions by outcome",
			},
			[]string{"stage", "outcome"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voxbridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "voxbridge_http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
			},
			[]string{"route"},
		),
	}
}

func (r *PrometheusRecorder) ObserveStage(stage string, elapsed time.Duration, err error) {
	r.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	r.stageTotal.WithLabelValues(stage, outcome(err)).Inc()
}

func (r *PrometheusRecorder) ObserveRequest(route string, status int, elapsed time.Duration) {
	r.requestTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var _ metrics.Recorder = (*PrometheusRecorder)(nil)

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return outcomeTimeout
	default:
		return outcomeError
	}
}
