package synthesizer

import (
	"context"

	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/synthesizer"
	"github.com/samber/do/v2"
	openai "github.com/sashabaranov/go-openai"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (synthesizer.Synthesizer, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.SynthesizerProvider == config.ProviderOpenAI {
			return NewSpeechSynthesizer(do.MustInvoke[*openai.Client](i), c.OpenAISpeechModel, c.OpenAISpeechVoice), nil
		}

		s, err := NewCloudTTSSynthesizer(context.Background(), do.MustInvoke[gcp.ClientOptions](i), c.GoogleTTSVoiceGender)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
