package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/synthesizer"
	openai "github.com/sashabaranov/go-openai"
)

// SpeechSynthesizer uses the OpenAI speech endpoint. Its voices are
// multilingual, so the target language only shapes the input text.
type SpeechSynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewSpeechSynthesizer(client *openai.Client, model, voice string) *SpeechSynthesizer {
	s := &SpeechSynthesizer{
		client: client,
		model:  openai.TTSModel1,
		voice:  openai.VoiceAlloy,
	}
	if model != "" {
		s.model = openai.SpeechModel(model)
	}
	if voice != "" {
		s.voice = openai.SpeechVoice(voice)
	}
	return s
}

func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text string, _ language.Language) (synthesizer.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return synthesizer.Result{}, synthesizer.ErrEmptyText
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return synthesizer.Result{}, err
		}
		return synthesizer.Result{}, fmt.Errorf("%w: %v", synthesizer.ErrSynthesisFailed, err)
	}
	defer func() {
		_ = resp.Close()
	}()

	data, err := io.ReadAll(resp)
	if err != nil {
		return synthesizer.Result{}, fmt.Errorf("%w: read audio: %v", synthesizer.ErrSynthesisFailed, err)
	}
	if len(data) == 0 {
		return synthesizer.Result{}, fmt.Errorf("%w: empty audio", synthesizer.ErrSynthesisFailed)
	}
	return synthesizer.Result{Audio: data, MimeType: mp3MimeType}, nil
}
