// Package testhelpers provides git repository fixtures for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a git repository for testing purposes
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new git repository in the specified directory
// using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config and pin the default
	// branch name
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	return cmd.Run()
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed
// output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange creates a file change in the repository. The file is staged
// unless unstaged is true.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	return r.WriteFile(fileName, textValue, unstaged)
}

// WriteFile writes a file at a repo-relative path, staging it unless unstaged
// is true
func (r *GitRepo) WriteFile(name, content string, unstaged bool) error {
	filePath := filepath.Join(r.Dir, name)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.RunGitCommand("add", filePath)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", "."); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// CreateBranch creates a new branch without checking it out
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a new branch
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out a branch
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", name)
}

// DeleteBranch deletes a branch
func (r *GitRepo) DeleteBranch(name string) error {
	return r.RunGitCommand("branch", "-D", name)
}

// RenameBranch renames a branch
func (r *GitRepo) RenameBranch(oldName, newName string) error {
	return r.RunGitCommand("branch", "-m", oldName, newName)
}

// CurrentBranchName returns the name of the current branch
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// HeadSHA returns the full SHA of HEAD
func (r *GitRepo) HeadSHA() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "HEAD")
}

// LastCommitMessage returns the subject of the most recent commit
func (r *GitRepo) LastCommitMessage() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
}

// LastCommitterName returns the committer name of the most recent commit
func (r *GitRepo) LastCommitterName() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%cn")
}

// LastAuthorName returns the author name of the most recent commit
func (r *GitRepo) LastAuthorName() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%an")
}

// DetachHead checks out HEAD in a detached state
func (r *GitRepo) DetachHead() error {
	return r.RunGitCommand("checkout", "--detach", "HEAD")
}
