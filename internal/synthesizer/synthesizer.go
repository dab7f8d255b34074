package synthesizer

import (
	"context"
	"errors"

	"github.com/foxseedlab/voxbridge/internal/language"
)

var (
	ErrEmptyText        = errors.New("nothing to synthesize")
	ErrSynthesisFailed  = errors.New("speech synthesis failed")
	ErrUnsupportedVoice = errors.New("no voice for language")
)

type Result struct {
	Audio    []byte
	MimeType string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, target language.Language) (Result, error)
}
