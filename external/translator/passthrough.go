package translator

import (
	"strings"

	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/translator"
)

// passthrough answers requests that need no backend call: blank text, and
// text already in the target language.
func passthrough(text string, source, target language.Language) (translator.Result, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return translator.Result{}, true
	}
	if !source.IsZero() && strings.EqualFold(source.Code, target.Code) {
		return translator.Result{Text: trimmed}, true
	}
	return translator.Result{}, false
}
