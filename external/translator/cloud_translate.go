package translator

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/foxseedlab/voxbridge/external/gcp"
	"github.com/foxseedlab/voxbridge/internal/language"
	"github.com/foxseedlab/voxbridge/internal/translator"
	translate "google.golang.org/api/translate/v2"
)

const plainTextFormat = "text"

// CloudTranslator calls the Cloud Translation v2 REST API.
type CloudTranslator struct {
	svc *translate.Service
}

func NewCloudTranslator(ctx context.Context, opts gcp.ClientOptions) (*CloudTranslator, error) {
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &CloudTranslator{svc: svc}, nil
}

func (t *CloudTranslator) Translate(ctx context.Context, text string, source, target language.Language) (translator.Result, error) {
	if res, ok := passthrough(text, source, target); ok {
		return res, nil
	}

	call := t.svc.Translations.List([]string{strings.TrimSpace(text)}, target.Code).
		Format(plainTextFormat).
		Context(ctx)
	if !source.IsZero() {
		call = call.Source(source.Code)
	}
	resp, err := call.Do()
	if err != nil {
		return translator.Result{}, classifyCloudTranslateError(err)
	}
	if len(resp.Translations) == 0 {
		return translator.Result{}, fmt.Errorf("%w: empty response", translator.ErrModelUnavailable)
	}
	// Plain text format still escapes a few entities in some responses.
	out := html.UnescapeString(resp.Translations[0].TranslatedText)
	return translator.Result{Text: strings.TrimSpace(out)}, nil
}

func classifyCloudTranslateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if gcp.HTTPStatus(err) == http.StatusBadRequest {
		return fmt.Errorf("%w: %v", translator.ErrUnsupportedLanguagePair, err)
	}
	return fmt.Errorf("%w: %v", translator.ErrModelUnavailable, err)
}
