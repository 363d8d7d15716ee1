package ai

import "strings"

// DefaultCommitPrompt is the built-in system prompt for commit message
// generation, used when no override is configured.
const DefaultCommitPrompt = `You are an expert software engineer that generates concise, one-line Git commit messages based on the provided diffs.
Review the provided context and diffs which are about to be committed to a git repo.
Review the diffs carefully.
Generate a one-line commit message for those changes.
The commit message should be structured as follows: <type>: <description>
Use these for <type>: fix, feat, build, chore, ci, docs, style, refactor, perf, test

Ensure the commit message:
- Starts with the appropriate prefix.
- Is in the imperative mood (e.g., "add feature" not "added feature" or "adding feature").
- Does not exceed 72 characters.

Reply only with the one-line commit message, without any additional text, explanations, or line breaks.`

// BuildCommitMessages assembles the two-message exchange for commit message
// generation: a system prompt and a user message containing the optional
// free-text context followed by the diffs.
func BuildCommitMessages(systemPrompt, context, diffs string) []Message {
	if systemPrompt == "" {
		systemPrompt = DefaultCommitPrompt
	}

	var content strings.Builder
	if context != "" {
		content.WriteString(context)
		content.WriteString("\n")
	}
	content.WriteString("# Diffs:\n")
	content.WriteString(diffs)

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: content.String()},
	}
}
