// Package gcp builds the client options shared by every Google Cloud backend.
package gcp

import (
	"fmt"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// ClientOptions carries authenticated options for Google API clients.
type ClientOptions []option.ClientOption

// NewClientOptions detects credentials once at startup. An empty
// credentialsJSON falls back to Application Default Credentials.
func NewClientOptions(credentialsJSON string) (ClientOptions, error) {
	detect := &credentials.DetectOptions{
		Scopes: []string{cloudPlatformScope},
	}
	if credentialsJSON != "" {
		detect.CredentialsJSON = []byte(credentialsJSON)
	}
	creds, err := credentials.DetectDefault(detect)
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}
	return ClientOptions{option.WithAuthCredentials(creds)}, nil
}

// With returns a copy of o extended with extra options.
func (o ClientOptions) With(extra ...option.ClientOption) []option.ClientOption {
	out := make([]option.ClientOption, 0, len(o)+len(extra))
	out = append(out, o...)
	return append(out, extra...)
}
