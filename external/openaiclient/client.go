// Package openaiclient builds the OpenAI client shared by the OpenAI backends.
package openaiclient

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

func New(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// StatusCode extracts the HTTP status from an OpenAI error, 0 when the call
// never produced a response.
func StatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// IsClientError reports a 4xx answer other than auth and rate limiting,
// i.e. a request the backend refused because of its content.
func IsClientError(err error) bool {
	code := StatusCode(err)
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return code >= 400 && code < 500
}
