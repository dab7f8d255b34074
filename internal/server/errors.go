package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/pipeline"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	"github.com/foxseedlab/voxbridge/internal/translator"
)

var errPayloadTooLarge = errors.New("audio exceeds the upload size limit")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrInvalidRequest), errors.Is(err, language.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, transcriber.ErrModelUnavailable), errors.Is(err, translator.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func stageFor(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		return string(stageErr.Stage)
	}
	if errors.Is(err, errPayloadTooLarge) || errors.Is(err, pipeline.ErrInvalidRequest) {
		return string(pipeline.StageValidation)
	}
	return ""
}
