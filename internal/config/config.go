// Package config provides repository configuration management for the aider
// git layer, reading settings from the .git/.aider_config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds settings that control commit attribution, message generation
// and ignore handling.
type Config struct {
	// AttributeAuthor overrides the author display name on agent-originated
	// commits
	AttributeAuthor bool `json:"attributeAuthor"`

	// AttributeCommitter overrides the committer display name on all commits
	AttributeCommitter bool `json:"attributeCommitter"`

	// AttributeCommitMessageAuthor prefixes commit messages of
	// agent-originated edits with "aider: "
	AttributeCommitMessageAuthor bool `json:"attributeCommitMessageAuthor"`

	// AttributeCommitMessageCommitter prefixes all commit messages with
	// "aider: "
	AttributeCommitMessageCommitter bool `json:"attributeCommitMessageCommitter"`

	// CommitPrompt overrides the built-in system prompt for commit message
	// generation
	CommitPrompt string `json:"commitPrompt,omitempty"`

	// PrimaryBranchName is the preferred production branch name
	PrimaryBranchName string `json:"primaryBranchName,omitempty"`

	// IgnoreFile is the path to the aider ignore-pattern file
	IgnoreFile string `json:"ignoreFile,omitempty"`

	// SubtreeOnly restricts operations to files under the current working
	// subtree
	SubtreeOnly bool `json:"subtreeOnly"`

	// CommitVerify controls whether commit hooks run (--no-verify when false)
	CommitVerify bool `json:"commitVerify"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		AttributeAuthor:    true,
		AttributeCommitter: true,
		PrimaryBranchName:  "main",
		CommitVerify:       true,
	}
}

// configFileName is resolved relative to the repository's .git directory
const configFileName = ".aider_config"

// Load reads the configuration from the repository's .git directory, applying
// defaults for missing values. A missing config file is not an error.
func Load(repoRoot string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(repoRoot, ".git", configFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the repository's .git directory
func Save(repoRoot string, cfg *Config) error {
	configPath := filepath.Join(repoRoot, ".git", configFileName)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
