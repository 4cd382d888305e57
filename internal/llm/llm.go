package llm

import (
	"context"
	"errors"
)

// SystemPrompt is sent as the system-role message on every analysis request.
const SystemPrompt = "You are an expert resume analyzer and career coach."

var (
	// ErrRequestFailed wraps every failed completion request: transport, auth, quota or malformed response.
	ErrRequestFailed = errors.New("analysis request failed")
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("completion client not configured")
)

// Client abstracts the hosted chat-completion provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PlaceholderClient stands in when no API credential is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
