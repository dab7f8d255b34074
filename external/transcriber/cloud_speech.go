package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	speechAPIEndpointPort = 443
	autoDetectLanguage    = "auto"
)

// Substrings of InvalidArgument messages that blame the uploaded audio rather
// than the recognizer, model or language settings.
var audioRejectionHints = []string{"audio", "encoding", "decod", "sample rate"}

type CloudSpeechConfig struct {
	ProjectID string
	Location  string
	Model     string
}

type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	Close() error
}

// CloudSpeechTranscriber uses the synchronous Speech-to-Text v2 Recognize
// call. One gRPC client is shared by all requests.
type CloudSpeechTranscriber struct {
	client     recognizeClient
	decoder    audio.Decoder
	recognizer string
	model      string
}

func NewCloudSpeechTranscriber(ctx context.Context, cfg CloudSpeechConfig, opts gcp.ClientOptions, decoder audio.Decoder) (*CloudSpeechTranscriber, error) {
	location := strings.TrimSpace(cfg.Location)
	model := strings.TrimSpace(cfg.Model)

	var extra []option.ClientOption
	if location != "global" {
		extra = append(extra, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", location, speechAPIEndpointPort)))
	}
	client, err := speech.NewClient(ctx, opts.With(extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	slog.Info("cloud speech client ready", "location", location, "model", model)

	return &CloudSpeechTranscriber{
		client:     client,
		decoder:    decoder,
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", cfg.ProjectID, location),
		model:      model,
	}, nil
}

func (t *CloudSpeechTranscriber) Transcribe(ctx context.Context, clip audio.Clip, hint language.Language) (transcriber.Result, error) {
	config := &speechpb.RecognitionConfig{
		Model:         t.model,
		LanguageCodes: []string{recognitionLanguage(hint)},
		Features: &speechpb.RecognitionFeatures{
			EnableAutomaticPunctuation: true,
		},
	}

	content := clip.Data
	pcm, err := t.decoder.Decode(clip)
	switch {
	case err == nil:
		config.DecodingConfig = &speechpb.RecognitionConfig_ExplicitDecodingConfig{
			ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
				Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
				SampleRateHertz:   int32(pcm.SampleRate),
				AudioChannelCount: int32(pcm.Channels),
			},
		}
		content = pcm.Data
		slog.Debug("decoded clip locally", "duration", pcm.Duration(), "channels", pcm.Channels)
	case errors.Is(err, audio.ErrUnsupportedFormat):
		config.DecodingConfig = &speechpb.RecognitionConfig_AutoDecodingConfig{
			AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
		}
	default:
		return transcriber.Result{}, fmt.Errorf("%w: %v", transcriber.ErrDecode, err)
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer: t.recognizer,
		Config:     config,
		AudioSource: &speechpb.RecognizeRequest_Content{
			Content: content,
		},
	})
	if err != nil {
		return transcriber.Result{}, classifyRecognizeError(err)
	}
	return collectRecognizeResults(resp, hint), nil
}

func (t *CloudSpeechTranscriber) Shutdown() error {
	return t.client.Close()
}

func recognitionLanguage(hint language.Language) string {
	if hint.IsZero() {
		return autoDetectLanguage
	}
	return hint.Locale
}

func collectRecognizeResults(resp *speechpb.RecognizeResponse, hint language.Language) transcriber.Result {
	var parts []string
	reported := ""
	for _, result := range resp.GetResults() {
		if len(result.GetAlternatives()) == 0 {
			continue
		}
		text := strings.TrimSpace(result.GetAlternatives()[0].GetTranscript())
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if reported == "" {
			reported = result.GetLanguageCode()
		}
	}
	if len(parts) == 0 {
		return transcriber.Result{}
	}
	return transcriber.Result{Text: strings.Join(parts, " "), DetectedLanguage: detectedLanguage(reported, hint)}
}

func classifyRecognizeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	st, ok := status.FromError(err)
	if ok {
		switch st.Code() {
		case codes.InvalidArgument:
			if isAudioRejection(st.Message()) {
				return fmt.Errorf("%w: %s", transcriber.ErrDecode, st.Message())
			}
			return fmt.Errorf("%w: %s", transcriber.ErrModelUnavailable, st.Message())
		case codes.DeadlineExceeded:
			return fmt.Errorf("recognize: %w", context.DeadlineExceeded)
		case codes.Canceled:
			return fmt.Errorf("recognize: %w", context.Canceled)
		}
	}
	return fmt.Errorf("%w: %v", transcriber.ErrModelUnavailable, err)
}

func isAudioRejection(msg string) bool {
	msg = strings.ToLower(msg)
	if strings.Contains(msg, "language") || strings.Contains(msg, "model") {
		return false
	}
	for _, hint := range audioRejectionHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
