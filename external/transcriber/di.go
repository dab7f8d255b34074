package transcriber

import (
	"context"

	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/config"
	"github.com/foxseedlab/voxbridge/internal/transcriber"
	"github.com/samber/do/v2"
	openai "github.com/sashabaranov/go-openai"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcriber.Transcriber, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.TranscriberProvider == config.ProviderOpenAI {
			return NewWhisperTranscriber(do.MustInvoke[*openai.Client](i), c.OpenAITranscribeModel), nil
		}

		// The client keeps this context for its lifetime.
		t, err := NewCloudSpeechTranscriber(context.Background(), CloudSpeechConfig{
			ProjectID: c.GoogleCloudProjectID,
			Location:  c.GoogleCloudSpeechLocation,
			Model:     c.GoogleCloudSpeechModel,
		}, do.MustInvoke[gcp.ClientOptions](i), do.MustInvoke[audio.Decoder](i))
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}
