package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:                  "development",
		HTTPAddr:             ":5000",
		MaxAudioBytes:        10 << 20,
		StageTimeoutSec:      60,
		TranscriberProvider:  ProviderGoogle,
		TranslatorProvider:   ProviderGoogle,
		SynthesizerProvider:  ProviderGoogle,
		GoogleCloudProjectID: "project-id",
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_InvalidStageTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.StageTimeoutSec = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive stage timeout")
	}
}

func TestValidate_InvalidMaxAudioBytes(t *testing.T) {
	cfg := validConfig()
	cfg.MaxAudioBytes = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive audio limit")
	}
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := validConfig()
	cfg.MaxConcurrentInference = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative concurrency")
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.SynthesizerProvider = "gtts"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestValidate_GoogleTranscriberNeedsProject(t *testing.T) {
	cfg := validConfig()
	cfg.GoogleCloudProjectID = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when project id is missing")
	}
	cfg.TranscriberProvider = ProviderOpenAI
	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error with openai transcriber, got %v", err)
	}
}

func TestValidate_OpenAINeedsAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.TranslatorProvider = ProviderOpenAI
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when openai key is missing")
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when required fields are missing")
	}
}

func TestStageTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.StageTimeoutSec = 5
	if got := cfg.StageTimeout(); got != 5*time.Second {
		t.Fatalf("unexpected stage timeout: %v", got)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}
