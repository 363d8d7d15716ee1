// Package ai provides commit-message generation backed by language model
// clients. Backends are tried in priority order, skipping any whose input
// token budget the request exceeds.
package ai

import (
	"context"
)

// Message is a single turn of a model exchange
type Message struct {
	Role    string
	Content string
}

// Generator defines the interface for a commit-message generation backend.
//
// Implementations should:
// - Send the message exchange to the model and return its text output
// - Declare the maximum number of input tokens they accept
// - Provide a token count estimate for a message list
//
// Implementations may handle rate limiting and retries as appropriate for
// their specific service.
type Generator interface {
	// Name returns a human-readable backend name for diagnostics
	Name() string

	// Generate sends the messages and returns the model's text output.
	// An empty result with nil error means the backend produced nothing.
	Generate(ctx context.Context, messages []Message) (string, error)

	// MaxInputTokens returns the backend's input token budget, or 0 if
	// unlimited
	MaxInputTokens() int

	// CountTokens estimates the token count of a message list
	CountTokens(messages []Message) int
}
