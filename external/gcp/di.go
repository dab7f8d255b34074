package gcp

import (
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (ClientOptions, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClientOptions(c.GoogleCloudCredentialsJSON)
	})
}
