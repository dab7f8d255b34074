package openaiclient

import (
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/samber/do/v2"
	openai "github.com/sashabaranov/go-openai"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*openai.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return New(c.OpenAIAPIKey, c.OpenAIBaseURL), nil
	})
}
