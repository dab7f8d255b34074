// Package pipeline runs one translation request through transcription,
// translation and synthesis, strictly in that order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/foxseedlab/voxbridge/internal/synthesizer"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	"github.com/foxseedlab/voxbridge/internal/translator"
	"github.com/foxseedlab/voxbridge/internal/webhook"
	"golang.org/x/sync/semaphore"
)

const (
	defaultStageTimeout = 60 * time.Second
	webhookTimeout      = 5 * time.Second
)

type Stage string

const (
	StageValidation    Stage = "validation"
	StageTranscription Stage = "transcription"
	StageTranslation   Stage = "translation"
	StageSynthesis     Stage = "synthesis"
)

var ErrInvalidRequest = errors.New("invalid request")

// StageError tags a failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Request struct {
	Audio          audio.Clip
	SourceLanguage string
	TargetLanguage string
	SessionID      string
}

type Response struct {
	SessionID        string
	Source           language.Language
	Target           language.Language
	InputText        string
	DetectedLanguage string
	TranslatedText   string
	SpeechDetected   bool
	// Speech is nil when there was nothing to synthesize.
	Speech *synthesizer.Result
}

type Options struct {
	StageTimeout time.Duration
	// MaxConcurrentInference bounds adapter calls process-wide; 0 disables
	// the bound.
	MaxConcurrentInference int
}

type Orchestrator struct {
	registry    *language.Registry
	transcriber transcriber.Transcriber
	translator  translator.Translator
	synthesizer synthesizer.Synthesizer
	webhook     webhook.Sender
	metrics     metrics.Recorder

	stageTimeout time.Duration
	gate         *semaphore.Weighted
	now          func() time.Time
	pending      sync.WaitGroup
}

func NewOrchestrator(registry *language.Registry, stt transcriber.Transcriber, tr translator.Translator, tts synthesizer.Synthesizer, wh webhook.Sender, rec metrics.Recorder, opts Options) *Orchestrator {
	if rec == nil {
		rec = metrics.Nop{}
	}
	o := &Orchestrator{
		registry:     registry,
		transcriber:  stt,
		translator:   tr,
		synthesizer:  tts,
		webhook:      wh,
		metrics:      rec,
		stageTimeout: opts.StageTimeout,
		now:          time.Now,
	}
	if o.stageTimeout <= 0 {
		o.stageTimeout = defaultStageTimeout
	}
	if opts.MaxConcurrentInference > 0 {
		o.gate = semaphore.NewWeighted(int64(opts.MaxConcurrentInference))
	}
	return o
}

func (o *Orchestrator) Languages() []language.Language {
	return o.registry.List()
}

func (o *Orchestrator) Run(ctx context.Context, req Request) (*Response, error) {
	source, target, err := o.validate(req)
	if err != nil {
		return nil, &StageError{Stage: StageValidation, Err: err}
	}

	transcript, err := runStage(ctx, o, StageTranscription, func(ctx context.Context) (transcriber.Result, error) {
		return o.transcriber.Transcribe(ctx, req.Audio, source)
	})
	if err != nil {
		o.logFailure(req, err)
		return nil, err
	}
	resp := &Response{
		SessionID:        req.SessionID,
		Source:           source,
		Target:           target,
		InputText:        transcript.Text,
		DetectedLanguage: transcript.DetectedLanguage,
		SpeechDetected:   transcript.Text != "",
	}
	if !resp.SpeechDetected {
		slog.Info("no speech detected", "session_id", req.SessionID, "audio_bytes", len(req.Audio.Data))
	}

	translated, err := runStage(ctx, o, StageTranslation, func(ctx context.Context) (translator.Result, error) {
		return o.translator.Translate(ctx, transcript.Text, source, target)
	})
	if err != nil {
		o.logFailure(req, err)
		return nil, err
	}
	resp.TranslatedText = translated.Text

	if resp.TranslatedText != "" {
		speech, err := runStage(ctx, o, StageSynthesis, func(ctx context.Context) (synthesizer.Result, error) {
			return o.synthesizer.Synthesize(ctx, resp.TranslatedText, target)
		})
		if err != nil {
			o.logFailure(req, err)
			return nil, err
		}
		resp.Speech = &speech
	}

	slog.Info("translation completed",
		"session_id", req.SessionID,
		"source_language", source.Code,
		"target_language", target.Code,
		"speech_detected", resp.SpeechDetected,
		"input_chars", len(resp.InputText),
		"output_chars", len(resp.TranslatedText))
	o.notify(ctx, resp)
	return resp, nil
}

// Shutdown waits for in-flight webhook deliveries.
func (o *Orchestrator) Shutdown() error {
	o.pending.Wait()
	return nil
}

func (o *Orchestrator) validate(req Request) (language.Language, language.Language, error) {
	if req.Audio.Empty() {
		return language.Language{}, language.Language{}, fmt.Errorf("%w: audio is empty", ErrInvalidRequest)
	}
	source, err := o.registry.Resolve(req.SourceLanguage)
	if err != nil {
		return language.Language{}, language.Language{}, fmt.Errorf("%w: source language: %w", ErrInvalidRequest, err)
	}
	target, err := o.registry.Resolve(req.TargetLanguage)
	if err != nil {
		return language.Language{}, language.Language{}, fmt.Errorf("%w: target language: %w", ErrInvalidRequest, err)
	}
	return source, target, nil
}

func runStage[T any](ctx context.Context, o *Orchestrator, stage Stage, call func(context.Context) (T, error)) (T, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	start := time.Now()
	var (
		out T
		err error
	)
	if err = o.acquire(stageCtx); err == nil {
		out, err = call(stageCtx)
		o.release()
	}
	if err != nil && errors.Is(stageCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	o.metrics.ObserveStage(string(stage), time.Since(start), err)
	if err != nil {
		var zero T
		return zero, &StageError{Stage: stage, Err: err}
	}
	return out, nil
}

func (o *Orchestrator) acquire(ctx context.Context) error {
	if o.gate == nil {
		return nil
	}
	if err := o.gate.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for inference slot: %w", err)
	}
	return nil
}

func (o *Orchestrator) release() {
	if o.gate != nil {
		o.gate.Release(1)
	}
}

func (o *Orchestrator) logFailure(req Request, err error) {
	var stageErr *StageError
	stage := ""
	if errors.As(err, &stageErr) {
		stage = string(stageErr.Stage)
	}
	slog.Error("translation pipeline failed", "error", err, "stage", stage, "session_id", req.SessionID)
}

func (o *Orchestrator) notify(ctx context.Context, resp *Response) {
	if o.webhook == nil {
		return
	}
	event := webhook.TranslationEvent{
		SessionID:        resp.SessionID,
		SourceLanguage:   resp.Source.Code,
		TargetLanguage:   resp.Target.Code,
		DetectedLanguage: resp.DetectedLanguage,
		InputText:        resp.InputText,
		TranslatedText:   resp.TranslatedText,
		SpeechDetected:   resp.SpeechDetected,
		CompletedAt:      o.now().UTC().Format(time.RFC3339),
	}
	whCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), webhookTimeout)
	o.pending.Add(1)
	go func() {
		defer o.pending.Done()
		defer cancel()
		if err := o.webhook.SendTranslation(whCtx, event); err != nil {
			slog.Warn("failed to send translation webhook", "error", err, "session_id", event.SessionID)
		}
	}()
}
