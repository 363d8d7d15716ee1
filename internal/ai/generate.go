package ai

import (
	"context"
	"errors"
	"strings"
)

// ErrNoMessage indicates that no backend produced a commit message
var ErrNoMessage = errors.New("no backend produced a commit message")

// GenerateCommitMessage tries each backend in priority order and returns the
// first non-empty result. Backends whose input token budget the exchange
// exceeds are skipped. Backend failures move on to the next backend; they do
// not abort the iteration. The skipped callback, if non-nil, is invoked with
// the name and error of every backend that failed.
func GenerateCommitMessage(ctx context.Context, generators []Generator, messages []Message, skipped func(name string, err error)) (string, error) {
	for _, gen := range generators {
		if max := gen.MaxInputTokens(); max > 0 && gen.CountTokens(messages) > max {
			continue
		}

		result, err := gen.Generate(ctx, messages)
		if err != nil {
			if skipped != nil {
				skipped(gen.Name(), err)
			}
			continue
		}
		if message := cleanMessage(result); message != "" {
			return message, nil
		}
	}

	return "", ErrNoMessage
}

// cleanMessage trims whitespace and strips a single pair of enclosing quotes
func cleanMessage(message string) string {
	message = strings.TrimSpace(message)
	if len(message) >= 2 && message[0] == '"' && message[len(message)-1] == '"' {
		message = strings.TrimSpace(message[1 : len(message)-1])
	}
	return message
}

// EstimateTokens is a rough token count for backends without a native
// tokenizer: one token per four characters of content.
func EstimateTokens(messages []Message) int {
	chars := 0
	for _, m := range messages {
		chars += len(m.Role) + len(m.Content)
	}
	return chars / 4
}
