package transcriber

import (
	"strings"

	"github.com/foxseedlab/voxbridge/internal/language"
)

var knownLanguages = language.Default()

func detectedLanguage(reported string, hint language.Language) string {
	if l, ok := knownLanguages.Detect(reported); ok {
		return l.Code
	}
	if reported = strings.ToLower(strings.TrimSpace(reported)); reported != "" {
		return reported
	}
	return hint.Code
}
