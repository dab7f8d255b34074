package pipeline

import (
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/foxseedlab/voxbridge/internal/synthesizer"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	"github.com/foxseedlab/voxbridge/internal/translator"
	"github.com/foxseedlab/voxbridge/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Orchestrator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		tr := do.MustInvoke[translator.Translator](i)
		tts := do.MustInvoke[synthesizer.Synthesizer](i)
		wh := do.MustInvoke[webhook.Sender](i)
		rec := do.MustInvoke[metrics.Recorder](i)
		return NewOrchestrator(language.Default(), stt, tr, tts, wh, rec, Options{
			StageTimeout:           cfg.StageTimeout(),
			MaxConcurrentInference: cfg.MaxConcurrentInference,
		}), nil
	})
}
