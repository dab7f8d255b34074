package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

type Config struct {
	Env                        string
	HTTPAddr                   string
	CORSAllowedOrigins         []string
	MaxAudioBytes              int64
	StageTimeoutSec            int
	MaxConcurrentInference     int
	TranscriberProvider        string
	TranslatorProvider         string
	SynthesizerProvider        string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	GoogleTTSVoiceGender       string
	OpenAIAPIKey               string
	OpenAIBaseURL              string
	OpenAITranscribeModel      string
	OpenAITranslateModel       string
	OpenAISpeechModel          string
	OpenAISpeechVoice          string
	TranslationWebhookURL      string
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.MaxAudioBytes <= 0 {
		return fmt.Errorf("MAX_AUDIO_BYTES must be positive, got %d", c.MaxAudioBytes)
	}
	if c.StageTimeoutSec <= 0 {
		return fmt.Errorf("STAGE_TIMEOUT_SEC must be positive, got %d", c.StageTimeoutSec)
	}
	if c.MaxConcurrentInference < 0 {
		return fmt.Errorf("MAX_CONCURRENT_INFERENCE must not be negative, got %d", c.MaxConcurrentInference)
	}
	for _, p := range c.providerChecks() {
		if p.value != ProviderGoogle && p.value != ProviderOpenAI {
			return fmt.Errorf("%s must be %q or %q, got %q", p.name, ProviderGoogle, ProviderOpenAI, p.value)
		}
	}
	if c.TranscriberProvider == ProviderGoogle && c.GoogleCloudProjectID == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID is required when TRANSCRIBER_PROVIDER=google")
	}
	if c.UsesProvider(ProviderOpenAI) && c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when any provider is openai")
	}
	return nil
}

type providerField struct {
	name  string
	value string
}

func (c *Config) providerChecks() []providerField {
	return []providerField{
		{name: "TRANSCRIBER_PROVIDER", value: c.TranscriberProvider},
		{name: "TRANSLATOR_PROVIDER", value: c.TranslatorProvider},
		{name: "SYNTHESIZER_PROVIDER", value: c.SynthesizerProvider},
	}
}

// UsesProvider reports whether any pipeline stage is served by provider.
func (c *Config) UsesProvider(provider string) bool {
	for _, p := range c.providerChecks() {
		if p.value == provider {
			return true
		}
	}
	return false
}

func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.StageTimeoutSec) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
