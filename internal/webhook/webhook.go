package webhook

import "context"

// TranslationEvent summarizes a finished translation. Audio is never sent.
type TranslationEvent struct {
	SessionID        string `json:"session_id,omitempty"`
	SourceLanguage   string `json:"source_language"`
	TargetLanguage   string `json:"target_language"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	InputText        string `json:"input_text"`
	TranslatedText   string `json:"translated_text"`
	SpeechDetected   bool   `json:"speech_detected"`
	CompletedAt      string `json:"completed_at"`
}

type Sender interface {
	SendTranslation(ctx context.Context, event TranslationEvent) error
}
