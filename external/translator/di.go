package translator

import (
	"context"

	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/translator"
	"github.com/samber/do/v2"
	openai "github.com/sashabaranov/go-openai"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (translator.Translator, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.TranslatorProvider == config.ProviderOpenAI {
			return NewChatTranslator(do.MustInvoke[*openai.Client](i), c.OpenAITranslateModel), nil
		}

		t, err := NewCloudTranslator(context.Background(), do.MustInvoke[gcp.ClientOptions](i))
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}
