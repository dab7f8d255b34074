package metrics

import (
	"github.com/foxseedlab/voxbridge/internal/metrics"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (metrics.Recorder, error) {
		return NewPrometheusRecorder(), nil
	})
}
