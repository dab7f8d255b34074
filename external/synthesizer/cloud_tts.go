package synthesizer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/synthesizer"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

const (
	mp3Encoding = "MP3"
	mp3MimeType = "audio/mpeg"
)

// CloudTTSSynthesizer renders MP3 speech with Cloud Text-to-Speech v1.
type CloudTTSSynthesizer struct {
	svc    *texttospeech.Service
	gender string
}

func NewCloudTTSSynthesizer(ctx context.Context, opts gcp.ClientOptions, voiceGender string) (*CloudTTSSynthesizer, error) {
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech service: %w", err)
	}
	gender := strings.ToUpper(strings.TrimSpace(voiceGender))
	if gender == "" {
		gender = "NEUTRAL"
	}
	return &CloudTTSSynthesizer{svc: svc, gender: gender}, nil
}

func (s *CloudTTSSynthesizer) Synthesize(ctx context.Context, text string, target language.Language) (synthesizer.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return synthesizer.Result{}, synthesizer.ErrEmptyText
	}

	resp, err := s.svc.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: target.SynthesisLocale(),
			SsmlGender:   s.gender,
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: mp3Encoding},
	}).Context(ctx).Do()
	if err != nil {
		return synthesizer.Result{}, classifyCloudTTSError(err)
	}

	data, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return synthesizer.Result{}, fmt.Errorf("%w: decode audio content: %v", synthesizer.ErrSynthesisFailed, err)
	}
	if len(data) == 0 {
		return synthesizer.Result{}, fmt.Errorf("%w: empty audio content", synthesizer.ErrSynthesisFailed)
	}
	return synthesizer.Result{Audio: data, MimeType: mp3MimeType}, nil
}

func classifyCloudTTSError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if gcp.HTTPStatus(err) == http.StatusBadRequest {
		return fmt.Errorf("%w: %v", synthesizer.ErrUnsupportedVoice, err)
	}
	return fmt.Errorf("%w: %v", synthesizer.ErrSynthesisFailed, err)
}
