package transcriber

import (
	"context"
	"errors"

	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/language"
)

var (
	ErrDecode           = errors.New("audio could not be decoded")
	ErrModelUnavailable = errors.New("speech recognition model unavailable")
)

type Result struct {
	Text string
	// DetectedLanguage is the registry code of the spoken language ("en",
	// "zh-CN"). Tags outside the registry are passed through lowercased;
	// empty when unknown.
	DetectedLanguage string
}

// Transcriber turns a recorded clip into text. A clip without speech yields
// an empty Result and a nil error.
type Transcriber interface {
	Transcribe(ctx context.Context, clip audio.Clip, hint language.Language) (Result, error)
}
