package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/translator"
	openai "github.com/sashabaranov/go-openai"
)

const chatSystemPrompt = "You are a translation engine. Translate the user's message from %s to %s. " +
	"Reply with the translation only."

// ChatTranslator translates with a chat completion model.
type ChatTranslator struct {
	client *openai.Client
	model  string
}

func NewChatTranslator(client *openai.Client, model string) *ChatTranslator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &ChatTranslator{client: client, model: model}
}

func (t *ChatTranslator) Translate(ctx context.Context, text string, source, target language.Language) (translator.Result, error) {
	if res, ok := passthrough(text, source, target); ok {
		return res, nil
	}

	sourceName := "the detected language"
	if !source.IsZero() {
		sourceName = source.Name
	}
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(chatSystemPrompt, sourceName, target.Name)},
			{Role: openai.ChatMessageRoleUser, Content: strings.TrimSpace(text)},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return translator.Result{}, err
		}
		return translator.Result{}, fmt.Errorf("%w: %v", translator.ErrModelUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return translator.Result{}, fmt.Errorf("%w: no choices returned", translator.ErrModelUnavailable)
	}
	return translator.Result{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}
