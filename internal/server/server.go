// Package server exposes the translation pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/foxseedlab/voxbridge/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

const (
	serviceName     = "voxbridge"
	requestIDHeader = "X-Request-ID"
	// unmatchedRoute is the route label for requests no route matched.
	unmatchedRoute = "unmatched"
	// multipartOverhead leaves room for form fields and part headers on
	// top of the audio limit.
	multipartOverhead = 1 << 20
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type Pipeline interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Response, error)
	Languages() []language.Language
}

type Options struct {
	AllowedOrigins []string
	MaxAudioBytes  int64
}

type Server struct {
	pipeline      Pipeline
	metrics       metrics.Recorder
	origins       []string
	maxAudioBytes int64
}

func NewServer(p Pipeline, rec metrics.Recorder, opts Options) *Server {
	if rec == nil {
		rec = metrics.Nop{}
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		pipeline:      p,
		metrics:       rec,
		origins:       origins,
		maxAudioBytes: opts.MaxAudioBytes,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}))
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/languages", s.handleLanguages)
	r.Post("/translate", s.handleTranslate)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		slog.Log(r.Context(), level, "http request",
			"request_id", requestID,
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", elapsed.Milliseconds())
	})
}
