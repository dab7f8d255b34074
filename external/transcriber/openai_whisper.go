package transcriber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	audioimpl "github.com/foxseedlab/voxbridge/external/audio"
	"github.com/foxseedlab/voxbridge/external/openaiclient"
	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	openai "github.com/sashabaranov/go-openai"
)

// WhisperTranscriber sends the clip untouched; the API decodes every common
// browser container itself.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

func NewWhisperTranscriber(client *openai.Client, model string) *WhisperTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperTranscriber{client: client, model: model}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, clip audio.Clip, hint language.Language) (transcriber.Result, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: "recording" + audioimpl.FileExtension(audioimpl.DetectMimeType(clip)),
		Reader:   bytes.NewReader(clip.Data),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if !hint.IsZero() {
		req.Language = hint.ISO639()
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return transcriber.Result{}, classifyWhisperError(err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return transcriber.Result{}, nil
	}
	return transcriber.Result{Text: text, DetectedLanguage: detectedLanguage(resp.Language, hint)}, nil
}

func classifyWhisperError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if openaiclient.IsClientError(err) {
		return fmt.Errorf("%w: %v", transcriber.ErrDecode, err)
	}
	return fmt.Errorf("%w: %v", transcriber.ErrModelUnavailable, err)
}
