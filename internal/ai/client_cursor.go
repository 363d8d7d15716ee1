package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// cursorAgentMaxInputTokens is the input budget declared for cursor-agent.
// The CLI itself has no hard documented limit; this keeps prompts for huge
// diffs from being sent at all.
const cursorAgentMaxInputTokens = 100000

// CursorAgentClient implements Generator using the cursor-agent CLI
type CursorAgentClient struct{}

// NewCursorAgentClient creates a new CursorAgentClient, failing if the
// cursor-agent CLI is not available in PATH.
func NewCursorAgentClient() (*CursorAgentClient, error) {
	if _, err := exec.LookPath("cursor-agent"); err != nil {
		return nil, fmt.Errorf("cursor-agent CLI not available in PATH")
	}
	return &CursorAgentClient{}, nil
}

// Name returns the backend name
func (c *CursorAgentClient) Name() string {
	return "cursor-agent"
}

// MaxInputTokens returns the declared input token budget
func (c *CursorAgentClient) MaxInputTokens() int {
	return cursorAgentMaxInputTokens
}

// CountTokens estimates tokens for the message list
func (c *CursorAgentClient) CountTokens(messages []Message) int {
	return EstimateTokens(messages)
}

// Generate sends the exchange to cursor-agent in non-interactive mode and
// returns the cleaned output.
func (c *CursorAgentClient) Generate(ctx context.Context, messages []Message) (string, error) {
	prompt := flattenMessages(messages)

	// The -p flag runs in non-interactive mode
	cmd := exec.CommandContext(ctx, "cursor-agent", "-p", prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", fmt.Errorf("cursor-agent not found in PATH")
		}
		return "", fmt.Errorf("cursor-agent failed: %w\nstderr: %s", err, stderr.String())
	}

	output := strings.TrimSpace(stdout.String())
	return stripMarkdownCodeBlocks(output), nil
}

// flattenMessages joins an exchange into a single prompt for CLI backends
// that take no structured message list
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

// stripMarkdownCodeBlocks removes a single enclosing fenced code block
func stripMarkdownCodeBlocks(output string) string {
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, "```") {
		return output
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[len(lines)-1], "```") {
		return output
	}

	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
