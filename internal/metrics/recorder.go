package metrics

import (
	"net/http"
	"time"
)

type Recorder interface {
	ObserveStage(stage string, elapsed time.Duration, err error)
	ObserveRequest(route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveStage(string, time.Duration, error) {}

func (Nop) ObserveRequest(string, int, time.Duration) {}

func (Nop) Handler() http.Handler {
	return http.NotFoundHandler()
}
