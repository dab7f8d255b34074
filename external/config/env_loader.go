package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/voxbridge/internal/config"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Env                        string   `env:"ENV" envDefault:"production"`
	HTTPAddr                   string   `env:"HTTP_ADDR" envDefault:":5000"`
	CORSAllowedOrigins         []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	MaxAudioBytes              int64    `env:"MAX_AUDIO_BYTES" envDefault:"10485760"`
	StageTimeoutSec            int      `env:"STAGE_TIMEOUT_SEC" envDefault:"60"`
	MaxConcurrentInference     int      `env:"MAX_CONCURRENT_INFERENCE" envDefault:"0"`
	TranscriberProvider        string   `env:"TRANSCRIBER_PROVIDER" envDefault:"google"`
	TranslatorProvider         string   `env:"TRANSLATOR_PROVIDER" envDefault:"google"`
	SynthesizerProvider        string   `env:"SYNTHESIZER_PROVIDER" envDefault:"google"`
	GoogleCloudProjectID       string   `env:"GOOGLE_CLOUD_PROJECT_ID"`
	GoogleCloudCredentialsJSON string   `env:"GOOGLE_CLOUD_CREDENTIALS_JSON"`
	GoogleCloudSpeechLocation  string   `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string   `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"long"`
	GoogleTTSVoiceGender       string   `env:"GOOGLE_TTS_VOICE_GENDER" envDefault:"NEUTRAL"`
	OpenAIAPIKey               string   `env:"OPENAI_API_KEY"`
	OpenAIBaseURL              string   `env:"OPENAI_BASE_URL"`
	OpenAITranscribeModel      string   `env:"OPENAI_TRANSCRIBE_MODEL" envDefault:"whisper-1"`
	OpenAITranslateModel       string   `env:"OPENAI_TRANSLATE_MODEL" envDefault:"gpt-4o-mini"`
	OpenAISpeechModel          string   `env:"OPENAI_SPEECH_MODEL" envDefault:"tts-1"`
	OpenAISpeechVoice          string   `env:"OPENAI_SPEECH_VOICE" envDefault:"alloy"`
	TranslationWebhookURL      string   `env:"TRANSLATION_WEBHOOK_URL"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func Load() (*internalconfig.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		HTTPAddr:                   raw.HTTPAddr,
		CORSAllowedOrigins:         raw.CORSAllowedOrigins,
		MaxAudioBytes:              raw.MaxAudioBytes,
		StageTimeoutSec:            raw.StageTimeoutSec,
		MaxConcurrentInference:     raw.MaxConcurrentInference,
		TranscriberProvider:        raw.TranscriberProvider,
		TranslatorProvider:         raw.TranslatorProvider,
		SynthesizerProvider:        raw.SynthesizerProvider,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		GoogleTTSVoiceGender:       raw.GoogleTTSVoiceGender,
		OpenAIAPIKey:               raw.OpenAIAPIKey,
		OpenAIBaseURL:              raw.OpenAIBaseURL,
		OpenAITranscribeModel:      raw.OpenAITranscribeModel,
		OpenAITranslateModel:       raw.OpenAITranslateModel,
		OpenAISpeechModel:          raw.OpenAISpeechModel,
		OpenAISpeechVoice:          raw.OpenAISpeechVoice,
		TranslationWebhookURL:      raw.TranslationWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
