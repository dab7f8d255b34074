package translator

import (
	"context"
	"errors"

	"github.com/foxseedlab/voxbridge/internal/language"
)

var (
	ErrUnsupportedLanguagePair = errors.New("unsupported language pair")
	ErrModelUnavailable        = errors.New("translation model unavailable")
)

type Result struct {
	Text string
}

// Translator translates text between registry languages. Empty text yields an
// empty Result without contacting the backend.
type Translator interface {
	Translate(ctx context.Context, text string, source, target language.Language) (Result, error)
}
