package server

import (
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/foxseedlab/voxbridge/internal/pipeline"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		orchestrator := do.MustInvoke[*pipeline.Orchestrator](i)
		rec := do.MustInvoke[metrics.Recorder](i)
		return NewServer(orchestrator, rec, Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MaxAudioBytes:  cfg.MaxAudioBytes,
		}), nil
	})
}
